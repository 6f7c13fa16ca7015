package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/print4me/pipeline/internal/adapter/payments"
	"github.com/print4me/pipeline/internal/domain/model"
	testhelpers "github.com/print4me/pipeline/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sessionID(id string) *string {
	return &id
}

func waitForConfirms(t *testing.T, facade *testhelpers.WorkerFacadeStub, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		facade.Lock()
		got := len(facade.Confirms)
		facade.Unlock()
		if got >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d confirmations, got %d", want, got)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPaymentWatcherConfirmsPaidSessions(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{
			{ID: "order-1", Status: model.StatusQuoted, CheckoutSessionID: sessionID("cs_1")},
			{ID: "order-2", Status: model.StatusQuoted, CheckoutSessionID: sessionID("cs_2")},
		}},
	}

	watcher := NewPaymentWatcher(facade, 10*time.Millisecond, 5, 2, discardLogger())
	watcher.Start(context.Background())
	waitForConfirms(t, facade, 2)
	watcher.Stop()

	facade.Lock()
	defer facade.Unlock()
	seen := map[string]bool{}
	for _, call := range facade.Confirms {
		seen[call.OrderID] = true
		if call.PaymentIntentID == nil || *call.PaymentIntentID != "pi_1" {
			t.Errorf("order %s: payment intent not forwarded", call.OrderID)
		}
	}
	if !seen["order-1"] || !seen["order-2"] {
		t.Errorf("expected both orders confirmed, got %v", seen)
	}
}

func TestPaymentWatcherSkipsUnpaidSessions(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{
			{ID: "order-1", Status: model.StatusQuoted, CheckoutSessionID: sessionID("cs_1")},
		}},
		SessionFn: func(ctx context.Context, id string) (*model.PaymentSession, error) {
			return &model.PaymentSession{SessionID: id, Status: model.PaymentSessionPending}, nil
		},
	}

	watcher := NewPaymentWatcher(facade, 10*time.Millisecond, 5, 1, discardLogger())
	watcher.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	watcher.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Confirms) != 0 {
		t.Fatalf("expected no confirmations for pending session, got %d", len(facade.Confirms))
	}
}

func TestPaymentWatcherSkipsOrdersWithoutSession(t *testing.T) {
	sessionCalls := 0
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{
			{ID: "order-1", Status: model.StatusQuoted},
		}},
		SessionFn: func(ctx context.Context, id string) (*model.PaymentSession, error) {
			sessionCalls++
			return nil, payments.ErrSessionNotFound
		},
	}

	watcher := NewPaymentWatcher(facade, 10*time.Millisecond, 5, 1, discardLogger())
	watcher.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	watcher.Stop()

	if sessionCalls != 0 {
		t.Fatalf("expected no provider calls for orders without session id, got %d", sessionCalls)
	}
}

func TestPaymentWatcherIgnoresUnknownSessions(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{
			{ID: "order-1", Status: model.StatusQuoted, CheckoutSessionID: sessionID("cs_gone")},
		}},
		SessionFn: func(ctx context.Context, id string) (*model.PaymentSession, error) {
			return nil, payments.ErrSessionNotFound
		},
	}

	watcher := NewPaymentWatcher(facade, 10*time.Millisecond, 5, 1, discardLogger())
	watcher.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	watcher.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Confirms) != 0 {
		t.Fatalf("expected no confirmations for unknown session, got %d", len(facade.Confirms))
	}
}

func TestPaymentWatcherSurvivesFetchErrors(t *testing.T) {
	calls := 0
	facade := &testhelpers.WorkerFacadeStub{
		OrdersFn: func(ctx context.Context, limit int) ([]model.Order, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("db down")
			}
			return nil, nil
		},
	}

	watcher := NewPaymentWatcher(facade, 10*time.Millisecond, 5, 1, discardLogger())
	watcher.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	watcher.Stop()

	if calls < 2 {
		t.Fatalf("expected polling to continue after fetch error, got %d calls", calls)
	}
}

func TestPaymentWatcherStopIsIdempotent(t *testing.T) {
	watcher := NewPaymentWatcher(&testhelpers.WorkerFacadeStub{}, 10*time.Millisecond, 5, 2, discardLogger())
	watcher.Start(context.Background())
	watcher.Stop()
	watcher.Stop()
}

func TestNewPaymentWatcherSanitizesSizes(t *testing.T) {
	watcher := NewPaymentWatcher(&testhelpers.WorkerFacadeStub{}, time.Second, 0, -3, discardLogger())
	if watcher.workers != 1 {
		t.Errorf("workers = %d, want 1", watcher.workers)
	}
	if watcher.batchSize != 1 {
		t.Errorf("batch size = %d, want 1", watcher.batchSize)
	}
}
