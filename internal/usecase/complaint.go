package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	"github.com/thangnstse171771/cakestory-market/internal/domain/repository"
)

// EvidenceVerifier checks that a handed-in media URL points at a real object
// in the public bucket.
type EvidenceVerifier interface {
	Verify(ctx context.Context, rawURL string) error
}

// ComplaintUseCase governs delivery complaints and their filing window.
type ComplaintUseCase struct {
	orders     repository.OrderRepository
	complaints repository.ComplaintRepository
	evidence   EvidenceVerifier
}

// NewComplaintUseCase constructs ComplaintUseCase.
func NewComplaintUseCase(orders repository.OrderRepository, complaints repository.ComplaintRepository, evidence EvidenceVerifier) *ComplaintUseCase {
	return &ComplaintUseCase{orders: orders, complaints: complaints, evidence: evidence}
}

// WindowReport describes the complaint countdown for one order.
type WindowReport struct {
	Deadline  *time.Time
	Remaining time.Duration
	Eligible  bool
}

// Window computes the remaining filing time. Without a shipped timestamp no
// deadline is reported and eligibility rests on the status check alone.
func Window(order *model.Order, now time.Time) WindowReport {
	report := WindowReport{Eligible: order.ComplaintWindowOpen(now)}
	if deadline, ok := order.ComplaintDeadline(); ok {
		report.Deadline = &deadline
		if remaining := deadline.Sub(now); remaining > 0 {
			report.Remaining = remaining
		}
	}
	return report
}

// File records a complaint for the actor's shipped order and moves the order
// to complaining. Exactly one complaint may exist per order.
func (u *ComplaintUseCase) File(ctx context.Context, actor model.Actor, orderID int64, reason, evidenceURL string, now time.Time) (*model.Complaint, error) {
	if err := ValidateReason(reason); err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role == model.RoleShop || !order.OwnedBy(actor) {
		return nil, domainErrors.ErrPermissionDenied
	}

	if order.Status != model.OrderStatusShipped {
		return nil, domainErrors.ErrInvalidTransition
	}

	if _, err := u.complaints.GetByOrder(ctx, orderID); err == nil {
		return nil, domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if !order.ComplaintWindowOpen(now) {
		return nil, domainErrors.ErrComplaintWindowClosed
	}

	if evidenceURL != "" && u.evidence != nil {
		if err := u.evidence.Verify(ctx, evidenceURL); err != nil {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidEvidence, err)
		}
	}

	complaint, err := u.complaints.Create(ctx, &model.Complaint{
		OrderID:     orderID,
		CustomerID:  actor.UserID,
		Reason:      reason,
		EvidenceURL: evidenceURL,
	})
	if err != nil {
		return nil, err
	}

	if err := u.orders.Transition(ctx, orderID, model.OrderStatusShipped, model.OrderStatusComplaining, nil); err != nil {
		return nil, err
	}

	return complaint, nil
}

// GetByOrder returns the order's complaint, if one exists.
func (u *ComplaintUseCase) GetByOrder(ctx context.Context, orderID int64) (*model.Complaint, error) {
	return u.complaints.GetByOrder(ctx, orderID)
}
