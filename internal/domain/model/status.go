package model

import "strings"

// OrderStatus is the canonical lifecycle value of an order.
type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusOrdered     OrderStatus = "ordered"
	OrderStatusPrepared    OrderStatus = "preparedForDelivery"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusComplaining OrderStatus = "complaining"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

// CanonicalStatuses lists every lifecycle value in progress order.
var CanonicalStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusOrdered,
	OrderStatusPrepared,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusComplaining,
	OrderStatusCancelled,
}

// statusSynonyms folds the vocabulary of older backends into the canonical
// set. Keys are lowercase.
var statusSynonyms = map[string]OrderStatus{
	"new":                   OrderStatusPending,
	"pending":               OrderStatusPending,
	"accepted":              OrderStatusOrdered,
	"confirmed":             OrderStatusOrdered,
	"received":              OrderStatusOrdered,
	"ordered":               OrderStatusOrdered,
	"ready":                 OrderStatusPrepared,
	"preparing":             OrderStatusPrepared,
	"prepared":              OrderStatusPrepared,
	"prepared_for_delivery": OrderStatusPrepared,
	"preparedfordelivery":   OrderStatusPrepared,
	"shipping":              OrderStatusShipped,
	"shipped":               OrderStatusShipped,
	"delivering":            OrderStatusShipped,
	"in_transit":            OrderStatusShipped,
	"ready_to_ship":         OrderStatusShipped,
	"done":                  OrderStatusCompleted,
	"delivered":             OrderStatusCompleted,
	"finished":              OrderStatusCompleted,
	"completed":             OrderStatusCompleted,
	"complaint":             OrderStatusComplaining,
	"complaining":           OrderStatusComplaining,
	"disputed":              OrderStatusComplaining,
	"canceled":              OrderStatusCancelled,
	"cancelled":             OrderStatusCancelled,
}

// NormalizeStatus maps an arbitrary backend status token to its canonical
// value. Unrecognized tokens pass through unchanged.
func NormalizeStatus(raw string) OrderStatus {
	if canonical, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return OrderStatus(raw)
}

// Known reports whether the status belongs to the canonical set.
func (s OrderStatus) Known() bool {
	for _, canonical := range CanonicalStatuses {
		if s == canonical {
			return true
		}
	}
	return false
}

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:     "Chờ xác nhận",
	OrderStatusOrdered:     "Đã tiếp nhận",
	OrderStatusPrepared:    "Sẵn sàng giao",
	OrderStatusShipped:     "Đang giao hàng",
	OrderStatusCompleted:   "Hoàn tất",
	OrderStatusComplaining: "Đang khiếu nại",
	OrderStatusCancelled:   "Đã hủy",
}

// Label returns the customer-facing wording. Unknown statuses render as-is.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// progressSteps positions each status on the five-step tracker. A complaint
// holds the bar at the delivery step; cancelled orders show no progress.
var progressSteps = map[OrderStatus]int{
	OrderStatusPending:     1,
	OrderStatusOrdered:     2,
	OrderStatusPrepared:    3,
	OrderStatusShipped:     4,
	OrderStatusComplaining: 4,
	OrderStatusCompleted:   5,
	OrderStatusCancelled:   0,
}

// ProgressStep returns the one-based tracker step, zero when none applies.
func (s OrderStatus) ProgressStep() int {
	return progressSteps[s]
}
