package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// SweeperFacadeStub mimics sweeper interactions with the market facade.
type SweeperFacadeStub struct {
	QuoteBatches [][]model.CakeQuote
	OrderBatches [][]model.Order
	ExpireFn     func(context.Context, int64) error
	CompleteFn   func(context.Context, int64) error
	Expired      []int64
	Completed    []int64
	mu           sync.Mutex
	quoteCalls   int32
	orderCalls   int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SweeperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweeperFacadeStub) Unlock() { s.mu.Unlock() }

// DueCakeQuotes returns batches from the configured queue.
func (s *SweeperFacadeStub) DueCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error) {
	call := atomic.AddInt32(&s.quoteCalls, 1)
	if int(call) <= len(s.QuoteBatches) {
		return s.QuoteBatches[call-1], nil
	}
	return nil, nil
}

// OverdueShippedOrders returns batches from the configured queue.
func (s *SweeperFacadeStub) OverdueShippedOrders(ctx context.Context, window time.Duration, now time.Time, limit int) ([]model.Order, error) {
	call := atomic.AddInt32(&s.orderCalls, 1)
	if int(call) <= len(s.OrderBatches) {
		return s.OrderBatches[call-1], nil
	}
	return nil, nil
}

// ExpireCakeQuote records expiry requests.
func (s *SweeperFacadeStub) ExpireCakeQuote(ctx context.Context, id int64) error {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expired = append(s.Expired, id)
	return nil
}

// AutoCompleteOrder records completion requests.
func (s *SweeperFacadeStub) AutoCompleteOrder(ctx context.Context, orderID int64) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, orderID)
	return nil
}
