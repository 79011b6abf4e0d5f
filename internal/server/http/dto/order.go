package dto

import (
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// OrderItemPayload is one order line on the wire.
type OrderItemPayload struct {
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Customization string  `json:"customization,omitempty"`
}

// PlaceOrderRequest describes the order creation payload.
type PlaceOrderRequest struct {
	ShopID       int64              `json:"shop_id"`
	PostID       *int64             `json:"post_id"`
	BasePrice    float64            `json:"base_price"`
	AddonTotal   float64            `json:"addon_total"`
	TotalPrice   float64            `json:"total_price"`
	Size         string             `json:"size"`
	Instructions string             `json:"instructions"`
	Items        []OrderItemPayload `json:"items"`
}

// ImportedOrder is one legacy order record. Prices and statuses arrive in
// whatever vocabulary the old backend used.
type ImportedOrder struct {
	Number        string             `json:"order_number"`
	CustomerID    int64              `json:"customer_id"`
	CustomerEmail string             `json:"customer_email"`
	CustomerName  string             `json:"customer_name"`
	ShopID        int64              `json:"shop_id"`
	PostID        *int64             `json:"post_id"`
	Status        string             `json:"status"`
	BasePrice     float64            `json:"base_price"`
	AddonTotal    float64            `json:"addon_total"`
	TotalPrice    float64            `json:"total_price"`
	Size          string             `json:"size"`
	Instructions  string             `json:"special_instructions"`
	Items         []OrderItemPayload `json:"items"`
	CreatedAt     *time.Time         `json:"created_at"`
	ShippedAt     *time.Time         `json:"shipped_at"`
}

// TransitionRequest names the lifecycle action to apply.
type TransitionRequest struct {
	Action string `json:"action"`
}

// ComplaintWindowPayload reports the complaint countdown.
type ComplaintWindowPayload struct {
	Eligible  bool       `json:"eligible"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
}

// OrderResponse is an order as rendered to clients. StatusLabel carries the
// customer-facing wording; ProgressStep drives the five-step tracker.
type OrderResponse struct {
	ID           int64              `json:"id"`
	Number       string             `json:"number"`
	CustomerID   int64              `json:"customer_id"`
	ShopID       int64              `json:"shop_id,omitempty"`
	PostID       *int64             `json:"post_id,omitempty"`
	Status       string             `json:"status"`
	StatusLabel  string             `json:"status_label"`
	ProgressStep int                `json:"progress_step"`
	BasePrice    float64            `json:"base_price"`
	AddonTotal   float64            `json:"addon_total,omitempty"`
	TotalPrice   float64            `json:"total_price"`
	Size         string             `json:"size,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Items        []OrderItemPayload `json:"items,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	ShippedAt    *time.Time         `json:"shipped_at,omitempty"`
}

// OrderDetailResponse adds the viewer's permitted actions and the complaint
// window to the order body.
type OrderDetailResponse struct {
	OrderResponse
	Actions         []string               `json:"actions"`
	ComplaintWindow ComplaintWindowPayload `json:"complaint_window"`
}

// ToOrderResponse converts a domain order for rendering.
func ToOrderResponse(order model.Order) OrderResponse {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Customization: item.Customization,
		})
	}
	return OrderResponse{
		ID:           order.ID,
		Number:       order.Number,
		CustomerID:   order.CustomerID,
		ShopID:       order.ShopID,
		PostID:       order.PostID,
		Status:       string(order.Status),
		StatusLabel:  order.Status.Label(),
		ProgressStep: order.Status.ProgressStep(),
		BasePrice:    order.BasePrice,
		AddonTotal:   order.AddonTotal,
		TotalPrice:   order.TotalPrice,
		Size:         order.Size,
		Instructions: order.Instructions,
		Items:        items,
		CreatedAt:    order.CreatedAt,
		ShippedAt:    order.ShippedAt,
	}
}

// ToOrder converts a legacy record into a domain order. Status normalization
// happens downstream.
func (r ImportedOrder) ToOrder() model.Order {
	items := make([]model.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, model.OrderItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Customization: item.Customization,
		})
	}
	order := model.Order{
		Number:        r.Number,
		CustomerID:    r.CustomerID,
		CustomerEmail: r.CustomerEmail,
		CustomerName:  r.CustomerName,
		ShopID:        r.ShopID,
		PostID:        r.PostID,
		Status:        model.OrderStatus(r.Status),
		BasePrice:     r.BasePrice,
		AddonTotal:    r.AddonTotal,
		TotalPrice:    r.TotalPrice,
		Size:          r.Size,
		Instructions:  r.Instructions,
		Items:         items,
		ShippedAt:     r.ShippedAt,
	}
	if r.CreatedAt != nil {
		order.CreatedAt = *r.CreatedAt
	}
	return order
}
