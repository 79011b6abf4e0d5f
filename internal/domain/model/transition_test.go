package model

import (
	"testing"
	"time"
)

func shipID(id int64) *int64 { return &id }

func testOrder(status OrderStatus) *Order {
	return &Order{
		ID:            7,
		CustomerID:    1,
		CustomerEmail: "mai@example.com",
		CustomerName:  "MaiBaker",
		ShopID:        5,
		Status:        status,
	}
}

func customer() Actor {
	return Actor{UserID: 1, Email: "mai@example.com", Username: "MaiBaker", Role: RoleCustomer}
}

func shopActor(shopID int64) Actor {
	return Actor{UserID: 9, Role: RoleShop, ShopID: &shopID}
}

func hasAction(actions []OrderAction, want OrderAction) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestPendingOrderOffersCancelOnly(t *testing.T) {
	order := testOrder(OrderStatusPending)
	actions := order.AvailableActions(customer(), TransitionContext{Now: time.Now()})
	if !hasAction(actions, ActionCancel) {
		t.Fatal("owner must be offered cancel from pending")
	}
	if hasAction(actions, ActionShip) || hasAction(actions, ActionAccept) {
		t.Fatalf("unexpected shop actions for customer: %v", actions)
	}
}

func TestOrderedOrderOffersAcceptToShop(t *testing.T) {
	order := testOrder(OrderStatusOrdered)
	actions := order.AvailableActions(shopActor(5), TransitionContext{Now: time.Now()})
	if !hasAction(actions, ActionAccept) {
		t.Fatalf("order's shop must be offered accept, got %v", actions)
	}
	if foreign := order.AvailableActions(shopActor(6), TransitionContext{Now: time.Now()}); len(foreign) != 0 {
		t.Fatalf("foreign shop must see no actions, got %v", foreign)
	}
}

func TestShippedWithComplaintHidesComplete(t *testing.T) {
	now := time.Now()
	shipped := now.Add(-10 * time.Minute)
	order := testOrder(OrderStatusShipped)
	order.ShippedAt = &shipped

	actions := order.AvailableActions(customer(), TransitionContext{Now: now})
	if !hasAction(actions, ActionComplete) || !hasAction(actions, ActionComplain) {
		t.Fatalf("owner should see complete and complain, got %v", actions)
	}

	withComplaint := order.AvailableActions(customer(), TransitionContext{HasComplaint: true, Now: now})
	if hasAction(withComplaint, ActionComplete) {
		t.Fatal("complete must be hidden once a complaint exists")
	}
	if hasAction(withComplaint, ActionComplain) {
		t.Fatal("second complaint must not be offered")
	}
}

func TestComplaintWindowBoundary(t *testing.T) {
	now := time.Now()
	order := testOrder(OrderStatusShipped)

	within := now.Add(-119 * time.Minute)
	order.ShippedAt = &within
	if !order.ComplaintWindowOpen(now) {
		t.Fatal("119 minutes after shipping must be eligible")
	}

	past := now.Add(-121 * time.Minute)
	order.ShippedAt = &past
	if order.ComplaintWindowOpen(now) {
		t.Fatal("121 minutes after shipping must be ineligible")
	}

	order.ShippedAt = nil
	if !order.ComplaintWindowOpen(now) {
		t.Fatal("without shipped timestamp eligibility rests on status alone")
	}
	if _, ok := order.ComplaintDeadline(); ok {
		t.Fatal("no deadline should be reported without shipped timestamp")
	}
}

func TestOwnershipFallbacks(t *testing.T) {
	order := testOrder(OrderStatusPending)

	byEmail := Actor{UserID: 99, Email: "mai@example.com", Role: RoleCustomer}
	if !order.OwnedBy(byEmail) {
		t.Fatal("email equality must resolve ownership")
	}

	byName := Actor{UserID: 99, Email: "other@example.com", Username: "maibaker", Role: RoleCustomer}
	if !order.OwnedBy(byName) {
		t.Fatal("case-insensitive username must resolve ownership")
	}

	stranger := Actor{UserID: 99, Email: "other@example.com", Username: "Someone", Role: RoleCustomer}
	if order.OwnedBy(stranger) {
		t.Fatal("stranger must not own the order")
	}
}

func TestShopControlOpenDefault(t *testing.T) {
	order := testOrder(OrderStatusOrdered)
	order.ShopID = 0
	if !order.ControlledBy(shopActor(42)) {
		t.Fatal("order without shop id admits any shop actor")
	}
	if order.ControlledBy(customer()) {
		t.Fatal("customers never control a shop's order")
	}
	if order.ControlledBy(Actor{UserID: 3, Role: RoleShop, ShopID: shipID(42)}) != true {
		t.Fatal("shop actor must pass with embedded shop id as well")
	}
}

func TestParseOrderAction(t *testing.T) {
	if action, ok := ParseOrderAction(" Ship "); !ok || action != ActionShip {
		t.Fatalf("ParseOrderAction(Ship) = %q, %v", action, ok)
	}
	if _, ok := ParseOrderAction("explode"); ok {
		t.Fatal("unknown verb must not parse")
	}
}

func TestActionTargets(t *testing.T) {
	tests := []struct {
		action OrderAction
		from   OrderStatus
		to     OrderStatus
	}{
		{ActionCancel, OrderStatusPending, OrderStatusCancelled},
		{ActionAccept, OrderStatusOrdered, OrderStatusPrepared},
		{ActionShip, OrderStatusPrepared, OrderStatusShipped},
		{ActionComplete, OrderStatusShipped, OrderStatusCompleted},
		{ActionComplain, OrderStatusShipped, OrderStatusComplaining},
	}
	for _, tt := range tests {
		from, ok := tt.action.Source()
		if !ok || from != tt.from {
			t.Errorf("%q source = %q, want %q", tt.action, from, tt.from)
		}
		to, ok := tt.action.Target()
		if !ok || to != tt.to {
			t.Errorf("%q target = %q, want %q", tt.action, to, tt.to)
		}
	}
}
