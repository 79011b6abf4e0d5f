package dto

import (
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// ComplaintRequest describes the complaint filing payload.
type ComplaintRequest struct {
	Reason      string `json:"reason"`
	EvidenceURL string `json:"evidence_url"`
}

// ComplaintResponse is a filed complaint as rendered to clients.
type ComplaintResponse struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	Reason      string    `json:"reason"`
	EvidenceURL string    `json:"evidence_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToComplaintResponse converts a domain complaint for rendering.
func ToComplaintResponse(complaint model.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		OrderID:     complaint.OrderID,
		Reason:      complaint.Reason,
		EvidenceURL: complaint.EvidenceURL,
		CreatedAt:   complaint.CreatedAt,
	}
}
