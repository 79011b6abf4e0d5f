package model

import "time"

// Complaint is a delivery dispute filed against exactly one order.
type Complaint struct {
	ID          int64
	OrderID     int64
	CustomerID  int64
	Reason      string
	EvidenceURL string
	CreatedAt   time.Time
}
