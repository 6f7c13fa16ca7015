package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/print4me/pipeline/internal/domain/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := NewHTTPClient(server.URL, "sk_test_key", logger)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client, server
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if _, err := NewHTTPClient("payments.local/api", "key", logger); err == nil {
		t.Fatal("expected error for non-absolute url")
	}
}

func TestSessionStatusPaid(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/v1/checkout/sessions/cs_123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "cs_123",
			"status":         "paid",
			"payment_intent": "pi_456",
			"amount_total":   1027,
		})
	}))

	session, err := client.SessionStatus(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Status != model.PaymentSessionPaid {
		t.Errorf("status = %s, want paid", session.Status)
	}
	if session.PaymentIntentID != "pi_456" {
		t.Errorf("payment intent = %s, want pi_456", session.PaymentIntentID)
	}
	if session.AmountCents != 1027 {
		t.Errorf("amount = %d, want 1027", session.AmountCents)
	}
}

func TestSessionStatusNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	if _, err := client.SessionStatus(context.Background(), "cs_missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStatusRateLimited(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.SessionStatus(context.Background(), "cs_123")
	var rateErr TooManyRequestsError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if rateErr.RetryAfter != 30*time.Second {
		t.Errorf("retry after = %s, want 30s", rateErr.RetryAfter)
	}
}

func TestSessionStatusServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := client.SessionStatus(context.Background(), "cs_123"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestRefundOK(t *testing.T) {
	var received refundRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/v1/refunds" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.Refund(context.Background(), "pi_456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.PaymentIntent != "pi_456" {
		t.Errorf("payment intent in body = %q, want pi_456", received.PaymentIntent)
	}
}

func TestRefundRejected(t *testing.T) {
	for _, status := range []int{http.StatusPaymentRequired, http.StatusConflict, http.StatusUnprocessableEntity} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		if err := client.Refund(context.Background(), "pi_456"); !errors.Is(err, ErrRefundRejected) {
			t.Fatalf("status %d: expected ErrRefundRejected, got %v", status, err)
		}
	}
}

func TestRefundRateLimitedDefaultDelay(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	err := client.Refund(context.Background(), "pi_456")
	var rateErr TooManyRequestsError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if rateErr.RetryAfter != 5*time.Second {
		t.Errorf("retry after = %s, want default 5s", rateErr.RetryAfter)
	}
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	header := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	delay := parseRetryAfter(header)
	if delay <= 0 || delay > time.Minute {
		t.Errorf("unexpected delay %s for http date header", delay)
	}
}
