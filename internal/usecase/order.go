package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders     repository.OrderRepository
	complaints repository.ComplaintRepository
	posts      repository.PostRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, complaints repository.ComplaintRepository, posts repository.PostRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, complaints: complaints, posts: posts}
}

// PlaceOrderInput carries everything needed to create an order.
type PlaceOrderInput struct {
	CustomerID   int64
	ShopID       int64
	PostID       *int64
	BasePrice    float64
	AddonTotal   float64
	TotalPrice   float64
	Size         string
	Instructions string
	Items        []model.OrderItem
}

// Place creates a new pending order with a fresh public number.
func (u *OrderUseCase) Place(ctx context.Context, input PlaceOrderInput) (*model.Order, error) {
	if input.BasePrice <= 0 && input.TotalPrice <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	order := &model.Order{
		Number:       uuid.NewString(),
		CustomerID:   input.CustomerID,
		ShopID:       input.ShopID,
		PostID:       input.PostID,
		Status:       model.OrderStatusPending,
		BasePrice:    input.BasePrice,
		AddonTotal:   input.AddonTotal,
		TotalPrice:   input.TotalPrice,
		Size:         input.Size,
		Instructions: input.Instructions,
		Items:        input.Items,
	}
	order.ResolvePrices()

	return u.orders.Create(ctx, order)
}

// Import stores an order handed over from the legacy backend, normalizing its
// status vocabulary on the way in and assigning a number when it has none.
func (u *OrderUseCase) Import(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.Status = model.NormalizeStatus(string(order.Status))
	if order.Number == "" {
		order.Number = uuid.NewString()
	}
	order.ResolvePrices()
	return u.orders.Create(ctx, order)
}

// Get loads an order with line items, deriving missing display quantities from
// the referenced marketplace post when possible.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PostID != nil {
		if post, err := u.posts.GetByID(ctx, *order.PostID); err == nil {
			DecorateQuantities(order, post)
		}
	}
	return order, nil
}

// ListByCustomer returns orders sorted by creation time.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// ListByShop returns a shop's incoming orders.
func (u *OrderUseCase) ListByShop(ctx context.Context, shopID int64) ([]model.Order, error) {
	return u.orders.ListByShop(ctx, shopID)
}

// Actions evaluates the transition gate for the actor against an order.
func (u *OrderUseCase) Actions(ctx context.Context, order *model.Order, actor model.Actor, now time.Time) ([]model.OrderAction, error) {
	tc, err := u.transitionContext(ctx, order.ID, now)
	if err != nil {
		return nil, err
	}
	return order.AvailableActions(actor, tc), nil
}

// Transition applies a gate-checked lifecycle action. Filing a complaint goes
// through ComplaintUseCase.File instead, which records the reason alongside
// the status change. The storage update is conditional on the status the gate
// saw, so a raced-away order yields ErrInvalidTransition and the caller
// re-fetches.
func (u *OrderUseCase) Transition(ctx context.Context, actor model.Actor, orderID int64, action model.OrderAction, now time.Time) (*model.Order, error) {
	if action == model.ActionComplain {
		return nil, domainErrors.ErrPermissionDenied
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tc, err := u.transitionContext(ctx, order.ID, now)
	if err != nil {
		return nil, err
	}

	if !order.Allows(action, actor, tc) {
		if from, ok := action.Source(); ok && from != order.Status {
			return nil, domainErrors.ErrInvalidTransition
		}
		return nil, domainErrors.ErrPermissionDenied
	}

	to, _ := action.Target()
	var shippedAt *time.Time
	if action == model.ActionShip {
		shippedAt = &now
	}

	if err := u.orders.Transition(ctx, order.ID, order.Status, to, shippedAt); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, order.ID)
}

// AutoComplete closes a shipped order whose complaint window lapsed without a
// complaint. Used by the lifecycle sweeper.
func (u *OrderUseCase) AutoComplete(ctx context.Context, orderID int64) error {
	return u.orders.Transition(ctx, orderID, model.OrderStatusShipped, model.OrderStatusCompleted, nil)
}

// OverdueShipped selects shipped orders past the given complaint window.
func (u *OrderUseCase) OverdueShipped(ctx context.Context, window time.Duration, now time.Time, limit int) ([]model.Order, error) {
	return u.orders.SelectOverdueShipped(ctx, now.Add(-window), limit)
}

// HasComplaint reports whether a complaint exists for the order.
func (u *OrderUseCase) HasComplaint(ctx context.Context, orderID int64) (bool, error) {
	_, err := u.complaints.GetByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (u *OrderUseCase) transitionContext(ctx context.Context, orderID int64, now time.Time) (model.TransitionContext, error) {
	hasComplaint, err := u.HasComplaint(ctx, orderID)
	if err != nil {
		return model.TransitionContext{}, err
	}
	return model.TransitionContext{HasComplaint: hasComplaint, Now: now}, nil
}
