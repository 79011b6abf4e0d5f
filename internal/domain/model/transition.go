package model

import (
	"strings"
	"time"
)

// ComplaintWindow is how long after shipping the customer may file a complaint.
const ComplaintWindow = 2 * time.Hour

// OrderAction is a lifecycle transition a viewer may request.
type OrderAction string

const (
	ActionCancel   OrderAction = "cancel"
	ActionAccept   OrderAction = "accept"
	ActionShip     OrderAction = "ship"
	ActionComplete OrderAction = "complete"
	ActionComplain OrderAction = "complain"
)

// ParseOrderAction resolves an action verb from a request body.
func ParseOrderAction(raw string) (OrderAction, bool) {
	switch OrderAction(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionCancel:
		return ActionCancel, true
	case ActionAccept:
		return ActionAccept, true
	case ActionShip:
		return ActionShip, true
	case ActionComplete:
		return ActionComplete, true
	case ActionComplain:
		return ActionComplain, true
	default:
		return "", false
	}
}

type transitionRule struct {
	From          OrderStatus
	To            OrderStatus
	Role          Role
	RequiresOwner bool
	RequiresShop  bool
}

// transitionRules is the single source of truth for which role moves an order
// between which statuses. Extra conditions around complaints are applied in
// TransitionContext checks.
var transitionRules = map[OrderAction]transitionRule{
	ActionCancel:   {From: OrderStatusPending, To: OrderStatusCancelled, Role: RoleCustomer, RequiresOwner: true},
	ActionAccept:   {From: OrderStatusOrdered, To: OrderStatusPrepared, Role: RoleShop, RequiresShop: true},
	ActionShip:     {From: OrderStatusPrepared, To: OrderStatusShipped, Role: RoleShop, RequiresShop: true},
	ActionComplete: {From: OrderStatusShipped, To: OrderStatusCompleted, Role: RoleCustomer, RequiresOwner: true},
	ActionComplain: {From: OrderStatusShipped, To: OrderStatusComplaining, Role: RoleCustomer, RequiresOwner: true},
}

// actionOrder keeps gate output deterministic.
var actionOrder = []OrderAction{ActionCancel, ActionAccept, ActionShip, ActionComplete, ActionComplain}

// Target returns the status the action moves an order to.
func (a OrderAction) Target() (OrderStatus, bool) {
	rule, ok := transitionRules[a]
	if !ok {
		return "", false
	}
	return rule.To, true
}

// Source returns the status the action is valid from.
func (a OrderAction) Source() (OrderStatus, bool) {
	rule, ok := transitionRules[a]
	if !ok {
		return "", false
	}
	return rule.From, true
}

// TransitionContext carries the per-order facts the gate needs beyond the
// order row itself.
type TransitionContext struct {
	HasComplaint bool
	Now          time.Time
}

// OwnedBy resolves whether the actor is the order's customer, attempting in
// order: id match, email equality, case-insensitive username equality.
func (o *Order) OwnedBy(actor Actor) bool {
	if o.CustomerID != 0 && actor.UserID != 0 && o.CustomerID == actor.UserID {
		return true
	}
	if o.CustomerEmail != "" && actor.Email != "" && o.CustomerEmail == actor.Email {
		return true
	}
	return o.CustomerName != "" && actor.Username != "" && strings.EqualFold(o.CustomerName, actor.Username)
}

// ControlledBy reports whether the actor acts for the order's shop. An order
// carrying no shop id admits any shop actor; the backend data never recorded
// the shop on those rows, so the gate stays open rather than locking everyone
// out.
func (o *Order) ControlledBy(actor Actor) bool {
	if actor.Role != RoleShop {
		return false
	}
	if o.ShopID == 0 {
		return true
	}
	return actor.ShopID != nil && *actor.ShopID == o.ShopID
}

// ComplaintDeadline returns the end of the complaint window, when known.
func (o *Order) ComplaintDeadline() (time.Time, bool) {
	if o.ShippedAt == nil {
		return time.Time{}, false
	}
	return o.ShippedAt.Add(ComplaintWindow), true
}

// ComplaintWindowOpen reports whether a complaint may still be filed at the
// given instant. With no shipped timestamp eligibility rests on status alone.
func (o *Order) ComplaintWindowOpen(now time.Time) bool {
	if o.Status != OrderStatusShipped {
		return false
	}
	deadline, ok := o.ComplaintDeadline()
	if !ok {
		return true
	}
	return now.Before(deadline)
}

// Allows evaluates a single action for the actor against this order.
func (o *Order) Allows(action OrderAction, actor Actor, tc TransitionContext) bool {
	rule, ok := transitionRules[action]
	if !ok || o.Status != rule.From {
		return false
	}
	// Shop actions need the shop role; customer actions need a non-shop viewer
	// who also passes the ownership check below.
	if rule.Role == RoleShop && actor.Role != RoleShop {
		return false
	}
	if rule.Role == RoleCustomer && actor.Role == RoleShop {
		return false
	}
	if rule.RequiresOwner && !o.OwnedBy(actor) {
		return false
	}
	if rule.RequiresShop && !o.ControlledBy(actor) {
		return false
	}
	switch action {
	case ActionComplete:
		return !tc.HasComplaint
	case ActionComplain:
		return !tc.HasComplaint && o.ComplaintWindowOpen(tc.Now)
	}
	return true
}

// AvailableActions lists every action the actor may currently take, in a
// stable order.
func (o *Order) AvailableActions(actor Actor, tc TransitionContext) []OrderAction {
	var actions []OrderAction
	for _, action := range actionOrder {
		if o.Allows(action, actor, tc) {
			actions = append(actions, action)
		}
	}
	return actions
}
