package repository

import (
	"context"
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. List methods
// return lean rows without line items; Get loads the full aggregate.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Order, error)

	// Transition moves the order between statuses only if it still holds the
	// expected one, stamping shippedAt when provided. A raced-away order
	// yields ErrInvalidTransition.
	Transition(ctx context.Context, orderID int64, from, to model.OrderStatus, shippedAt *time.Time) error

	// SelectOverdueShipped returns shipped orders without a complaint whose
	// shipped timestamp predates the cutoff, locked for the caller's batch.
	SelectOverdueShipped(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}

// ComplaintRepository persists delivery complaints, one per order.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Complaint, error)
}
