package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// UserByID returns the authenticated user's record.
func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleAdmin}, nil
}

// OrderFacadeStub provides controllable behaviour for customer order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, int64, usecase.CreateOrderInput) (*model.Order, *model.OrderEvent, error)
	OrdersFn func(context.Context, int64, *model.OrderStatus) ([]model.Order, error)
	GetFn    func(context.Context, int64, string) (*model.Order, []model.OrderEvent, error)
	QuoteFn  func(context.Context, int64, string) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a fresh order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, input usecase.CreateOrderInput) (*model.Order, *model.OrderEvent, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, input)
	}
	order := &model.Order{ID: "order-1", UserID: userID, Status: model.StatusNew, QuoteCurrency: "EUR"}
	return order, &model.OrderEvent{OrderID: order.ID, ToStatus: model.StatusNew}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, status)
	}
	return []model.Order{{ID: "order-1", UserID: userID, Status: model.StatusNew}}, nil
}

// OrderWithEvents returns configured order and timeline.
func (s OrderFacadeStub) OrderWithEvents(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderEvent, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, orderID)
	}
	order := &model.Order{ID: orderID, UserID: userID, Status: model.StatusNew}
	return order, []model.OrderEvent{{OrderID: orderID, ToStatus: model.StatusNew}}, nil
}

// QuoteOrder returns the order advanced to QUOTED.
func (s OrderFacadeStub) QuoteOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, userID, orderID)
	}
	total := int64(1500)
	return &model.Order{ID: orderID, UserID: userID, Status: model.StatusQuoted, QuoteTotalCents: &total}, nil
}

// ProfileFacadeStub serves printer and material catalogs.
type ProfileFacadeStub struct {
	ProfilesFn func(context.Context) ([]model.PrinterProfile, []model.MaterialProfile, error)
}

// Profiles returns configured catalogs.
func (s ProfileFacadeStub) Profiles(ctx context.Context) ([]model.PrinterProfile, []model.MaterialProfile, error) {
	if s.ProfilesFn != nil {
		return s.ProfilesFn(ctx)
	}
	return []model.PrinterProfile{{ID: "printer-1", Name: "Generic FDM"}},
		[]model.MaterialProfile{{ID: "material-1", Name: "PLA"}}, nil
}

// TransitionCall stores information about TransitionOrder invocations.
type TransitionCall struct {
	ActorID int64
	OrderID string
	Input   usecase.TransitionInput
}

// AdminFacadeStub simulates the operator's pipeline operations.
type AdminFacadeStub struct {
	ListFn       func(context.Context, repository.OrderListFilter) ([]model.Order, int64, error)
	GetFn        func(context.Context, string) (*model.Order, []model.OrderEvent, error)
	TransitionFn func(context.Context, int64, string, usecase.TransitionInput) (*model.Order, *model.OrderEvent, error)

	Transitions []TransitionCall
}

// AdminOrders returns configured listing.
func (s *AdminFacadeStub) AdminOrders(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Order{{ID: "order-1", Status: model.StatusNew}}, 1, nil
}

// AdminOrderWithEvents returns configured order and timeline.
func (s *AdminFacadeStub) AdminOrderWithEvents(ctx context.Context, orderID string) (*model.Order, []model.OrderEvent, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	order := &model.Order{ID: orderID, Status: model.StatusNew}
	return order, []model.OrderEvent{{OrderID: orderID, ToStatus: model.StatusNew}}, nil
}

// TransitionOrder records invocations and returns configured responses.
func (s *AdminFacadeStub) TransitionOrder(ctx context.Context, actorID int64, orderID string, input usecase.TransitionInput) (*model.Order, *model.OrderEvent, error) {
	s.Transitions = append(s.Transitions, TransitionCall{ActorID: actorID, OrderID: orderID, Input: input})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actorID, orderID, input)
	}
	from := model.StatusNew
	order := &model.Order{ID: orderID, Status: input.To}
	return order, &model.OrderEvent{OrderID: orderID, FromStatus: &from, ToStatus: input.To}, nil
}

// WorkflowFacadeStub aggregates facade dependencies for HTTP layer tests.
type WorkflowFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ProfileFacadeStub
	AdminFacadeStub
}

// ConfirmCall stores information about ConfirmPayment invocations.
type ConfirmCall struct {
	OrderID         string
	PaymentIntentID *string
}

// WorkerFacadeStub mimics payment watcher interactions with the facade.
type WorkerFacadeStub struct {
	Orders    [][]model.Order
	OrdersFn  func(context.Context, int) ([]model.Order, error)
	SessionFn func(context.Context, string) (*model.PaymentSession, error)
	ConfirmFn func(context.Context, string, *string) error
	Confirms  []ConfirmCall

	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersAwaitingPayment returns batches from configured queue.
func (s *WorkerFacadeStub) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// PaymentSession returns configured session state.
func (s *WorkerFacadeStub) PaymentSession(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, sessionID)
	}
	return &model.PaymentSession{SessionID: sessionID, Status: model.PaymentSessionPaid, PaymentIntentID: "pi_1"}, nil
}

// ConfirmPayment records confirmation requests.
func (s *WorkerFacadeStub) ConfirmPayment(ctx context.Context, orderID string, paymentIntentID *string) error {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, orderID, paymentIntentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Confirms = append(s.Confirms, ConfirmCall{OrderID: orderID, PaymentIntentID: paymentIntentID})
	return nil
}

// PaymentProviderStub fakes the payment gateway for facade tests.
type PaymentProviderStub struct {
	SessionFn func(context.Context, string) (*model.PaymentSession, error)
	RefundFn  func(context.Context, string) error
	Refunds   []string
	Err       error
}

// SessionStatus returns configured response or a settled session.
func (s *PaymentProviderStub) SessionStatus(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, sessionID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.PaymentSession{SessionID: sessionID, Status: model.PaymentSessionPaid, PaymentIntentID: "pi_1"}, nil
}

// Refund records refunded payment intents.
func (s *PaymentProviderStub) Refund(ctx context.Context, paymentIntentID string) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, paymentIntentID)
	}
	if s.Err != nil {
		return s.Err
	}
	s.Refunds = append(s.Refunds, paymentIntentID)
	return nil
}
