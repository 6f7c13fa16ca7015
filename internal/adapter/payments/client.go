package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/print4me/pipeline/internal/domain/model"
)

// ErrSessionNotFound indicates the provider doesn't know the checkout session.
var ErrSessionNotFound = errors.New("checkout session not found")

// ErrRefundRejected indicates the provider declined the refund request.
var ErrRefundRejected = errors.New("refund rejected by payment provider")

// TooManyRequestsError represents rate limiting signal from the payment provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the payment provider.
type Client interface {
	SessionStatus(ctx context.Context, sessionID string) (*model.PaymentSession, error)
	Refund(ctx context.Context, paymentIntentID string) error
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// sessionResponse mirrors the provider's checkout session payload.
type sessionResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentIntent string `json:"payment_intent"`
	AmountTotal   int64  `json:"amount_total"`
}

type refundRequest struct {
	PaymentIntent string `json:"payment_intent"`
}

// NewHTTPClient creates HTTP payment client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SessionStatus queries the provider for one checkout session.
func (c *HTTPClient) SessionStatus(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions/", sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sessionResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &model.PaymentSession{
			SessionID:       data.ID,
			Status:          model.PaymentSessionStatus(data.Status),
			PaymentIntentID: data.PaymentIntent,
			AmountCents:     data.AmountTotal,
		}, nil
	case http.StatusNotFound:
		return nil, ErrSessionNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment session request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

// Refund asks the provider to refund the given payment intent.
func (c *HTTPClient) Refund(ctx context.Context, paymentIntentID string) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/refunds")

	payload, err := json.Marshal(refundRequest{PaymentIntent: paymentIntentID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case http.StatusPaymentRequired, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrRefundRejected
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("refund request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
