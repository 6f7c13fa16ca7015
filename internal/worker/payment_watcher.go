package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/print4me/pipeline/internal/adapter/payments"
	"github.com/print4me/pipeline/internal/domain/model"
)

// PipelineFacade exposes the subset of application functionality required by the watcher.
type PipelineFacade interface {
	OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error)
	PaymentSession(ctx context.Context, sessionID string) (*model.PaymentSession, error)
	ConfirmPayment(ctx context.Context, orderID string, paymentIntentID *string) error
}

// PaymentWatcher polls the payment provider for settled checkout sessions and
// confirms the matching orders concurrently.
type PaymentWatcher struct {
	facade       PipelineFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentWatcher constructs the payment watcher worker pool.
func NewPaymentWatcher(facade PipelineFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentWatcher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentWatcher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentWatcher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentWatcher) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersAwaitingPayment(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders awaiting payment failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentWatcher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *PaymentWatcher) handleOrder(ctx context.Context, order model.Order) {
	if order.CheckoutSessionID == nil {
		return
	}

	session, err := p.facade.PaymentSession(ctx, *order.CheckoutSessionID)
	if err != nil {
		switch e := err.(type) {
		case payments.TooManyRequestsError:
			p.logger.Warn("payment provider rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, payments.ErrSessionNotFound) {
				// The session may not be visible to the provider yet.
				return
			}
			p.logger.Error("payment session fetch failed",
				slog.String("order_id", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	if session.Status != model.PaymentSessionPaid {
		return
	}

	var intent *string
	if session.PaymentIntentID != "" {
		intent = &session.PaymentIntentID
	}
	if err := p.facade.ConfirmPayment(ctx, order.ID, intent); err != nil {
		p.logger.Error("confirm payment failed",
			slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
}
