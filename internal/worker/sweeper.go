package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/thangnstse171771/cakestory-market/internal/domain/errors"
	"github.com/thangnstse171771/cakestory-market/internal/domain/model"
)

// MarketFacade exposes the subset of application functionality required by the sweeper.
type MarketFacade interface {
	DueCakeQuotes(ctx context.Context, now time.Time, limit int) ([]model.CakeQuote, error)
	ExpireCakeQuote(ctx context.Context, id int64) error
	OverdueShippedOrders(ctx context.Context, window time.Duration, now time.Time, limit int) ([]model.Order, error)
	AutoCompleteOrder(ctx context.Context, orderID int64) error
}

type taskKind int

const (
	taskExpireQuote taskKind = iota
	taskCompleteOrder
)

type task struct {
	kind taskKind
	id   int64
}

// Sweeper periodically expires overdue cake quotes and auto-completes shipped
// orders whose complaint window lapsed, processing both concurrently.
type Sweeper struct {
	facade          MarketFacade
	interval        time.Duration
	batchSize       int
	workers         int
	complaintWindow time.Duration
	logger          *slog.Logger

	tasks  chan task
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the lifecycle sweeper worker pool.
func NewSweeper(facade MarketFacade, interval time.Duration, batchSize, workers int, complaintWindow time.Duration, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Sweeper{
		facade:          facade,
		interval:        interval,
		batchSize:       batchSize,
		workers:         workers,
		complaintWindow: complaintWindow,
		logger:          logger,
		tasks:           make(chan task, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.tasks)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	quotes, err := s.facade.DueCakeQuotes(ctx, now, s.batchSize)
	if err != nil {
		s.logger.Error("select due cake quotes failed", slog.String("error", err.Error()))
	}
	for _, quote := range quotes {
		select {
		case <-ctx.Done():
			return
		case s.tasks <- task{kind: taskExpireQuote, id: quote.ID}:
		}
	}

	orders, err := s.facade.OverdueShippedOrders(ctx, s.complaintWindow, now, s.batchSize)
	if err != nil {
		s.logger.Error("select overdue shipped orders failed", slog.String("error", err.Error()))
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.tasks <- task{kind: taskCompleteOrder, id: order.ID}:
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-s.tasks:
			if !ok {
				return
			}
			s.handle(ctx, t)
		}
	}
}

// handle applies one task. Losing the status race is expected when a customer
// files a complaint or a shop matches a quote between select and update.
func (s *Sweeper) handle(ctx context.Context, t task) {
	var err error
	switch t.kind {
	case taskExpireQuote:
		err = s.facade.ExpireCakeQuote(ctx, t.id)
	case taskCompleteOrder:
		err = s.facade.AutoCompleteOrder(ctx, t.id)
	}
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidTransition) {
			return
		}
		s.logger.Error("sweep task failed", slog.Int64("id", t.id), slog.Int("kind", int(t.kind)), slog.String("error", err.Error()))
	}
}
