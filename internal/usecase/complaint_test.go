package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
	testhelpers "github.com/thangnstse171771/cakestory-market/internal/test"
)

type verifierStub struct {
	err  error
	seen []string
}

func (v *verifierStub) Verify(ctx context.Context, rawURL string) error {
	v.seen = append(v.seen, rawURL)
	return v.err
}

func newComplaintUseCase(verifier EvidenceVerifier) (*ComplaintUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.ComplaintRepositoryStub) {
	orders := testhelpers.NewOrderRepositoryStub()
	complaints := testhelpers.NewComplaintRepositoryStub()
	return NewComplaintUseCase(orders, complaints, verifier), orders, complaints
}

func shippedOrder(minutesAgo int) *model.Order {
	shipped := time.Now().Add(-time.Duration(minutesAgo) * time.Minute)
	return &model.Order{ID: 7, CustomerID: 1, ShopID: 5, Status: model.OrderStatusShipped, ShippedAt: &shipped}
}

func TestFileComplaintMovesOrderToComplaining(t *testing.T) {
	verifier := &verifierStub{}
	uc, orders, _ := newComplaintUseCase(verifier)
	orders.Put(shippedOrder(10))

	complaint, err := uc.File(context.Background(), ownerActor(), 7, "cake arrived crushed", "https://media.example.com/evidence/1.jpg", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if complaint.OrderID != 7 {
		t.Fatalf("complaint order = %d", complaint.OrderID)
	}
	if len(verifier.seen) != 1 {
		t.Fatal("evidence URL must be verified")
	}

	order, err := orders.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if order.Status != model.OrderStatusComplaining {
		t.Fatalf("order status = %q, want complaining", order.Status)
	}
}

func TestFileComplaintWindowExpired(t *testing.T) {
	uc, orders, _ := newComplaintUseCase(nil)
	orders.Put(shippedOrder(121))

	if _, err := uc.File(context.Background(), ownerActor(), 7, "late", "", time.Now()); !errors.Is(err, domainErrors.ErrComplaintWindowClosed) {
		t.Fatalf("expected ErrComplaintWindowClosed, got %v", err)
	}
}

func TestFileComplaintWithoutShippedTimestamp(t *testing.T) {
	uc, orders, _ := newComplaintUseCase(nil)
	orders.Put(&model.Order{ID: 7, CustomerID: 1, Status: model.OrderStatusShipped})

	if _, err := uc.File(context.Background(), ownerActor(), 7, "no tracking", "", time.Now()); err != nil {
		t.Fatalf("status-only eligibility must allow filing, got %v", err)
	}
}

func TestFileComplaintDuplicate(t *testing.T) {
	uc, orders, complaints := newComplaintUseCase(nil)
	orders.Put(shippedOrder(10))
	if _, err := complaints.Create(context.Background(), &model.Complaint{OrderID: 7, CustomerID: 1, Reason: "first"}); err != nil {
		t.Fatalf("seed complaint: %v", err)
	}

	if _, err := uc.File(context.Background(), ownerActor(), 7, "second", "", time.Now()); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFileComplaintWrongStatus(t *testing.T) {
	uc, orders, _ := newComplaintUseCase(nil)
	orders.Put(&model.Order{ID: 7, CustomerID: 1, Status: model.OrderStatusPending})

	if _, err := uc.File(context.Background(), ownerActor(), 7, "too early", "", time.Now()); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestFileComplaintRejectedEvidence(t *testing.T) {
	verifier := &verifierStub{err: errors.New("host mismatch")}
	uc, orders, _ := newComplaintUseCase(verifier)
	orders.Put(shippedOrder(10))

	if _, err := uc.File(context.Background(), ownerActor(), 7, "bad cake", "https://elsewhere.example.com/x.jpg", time.Now()); !errors.Is(err, domainErrors.ErrInvalidEvidence) {
		t.Fatalf("expected ErrInvalidEvidence, got %v", err)
	}
}

func TestFileComplaintEmptyReason(t *testing.T) {
	uc, orders, _ := newComplaintUseCase(nil)
	orders.Put(shippedOrder(10))

	if _, err := uc.File(context.Background(), ownerActor(), 7, "  ", "", time.Now()); !errors.Is(err, domainErrors.ErrInvalidReason) {
		t.Fatalf("expected ErrInvalidReason, got %v", err)
	}
}

func TestFileComplaintStrangerDenied(t *testing.T) {
	uc, orders, _ := newComplaintUseCase(nil)
	orders.Put(shippedOrder(10))

	stranger := model.Actor{UserID: 2, Email: "x@example.com", Username: "X", Role: model.RoleCustomer}
	if _, err := uc.File(context.Background(), stranger, 7, "not mine", "", time.Now()); !errors.Is(err, domainErrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestWindowReport(t *testing.T) {
	now := time.Now()
	shipped := now.Add(-time.Hour)
	order := &model.Order{ID: 7, CustomerID: 1, ShopID: 5, Status: model.OrderStatusShipped, ShippedAt: &shipped}
	report := Window(order, now)
	if !report.Eligible {
		t.Fatal("one hour in, filing must still be eligible")
	}
	if report.Deadline == nil {
		t.Fatal("deadline must be reported with shipped timestamp")
	}
	if report.Remaining != time.Hour {
		t.Fatalf("remaining = %v, want exactly an hour", report.Remaining)
	}

	noTimestamp := &model.Order{Status: model.OrderStatusShipped}
	report = Window(noTimestamp, now)
	if report.Deadline != nil {
		t.Fatal("no deadline without shipped timestamp")
	}
	if !report.Eligible {
		t.Fatal("status-only eligibility must hold")
	}
}
