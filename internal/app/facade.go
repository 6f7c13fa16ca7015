package app

import (
	"context"
	"log/slog"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/usecase"
)

// PaymentProvider is the slice of the payment gateway the facade needs.
type PaymentProvider interface {
	SessionStatus(ctx context.Context, sessionID string) (*model.PaymentSession, error)
	Refund(ctx context.Context, paymentIntentID string) error
}

// PipelineFacade is the single entry point handlers and workers talk to.
type PipelineFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	quotes   *usecase.QuoteUseCase
	profiles *usecase.ProfileUseCase
	workflow *usecase.WorkflowUseCase
	payments PaymentProvider
	logger   *slog.Logger
}

func NewPipelineFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	quotes *usecase.QuoteUseCase,
	profiles *usecase.ProfileUseCase,
	workflow *usecase.WorkflowUseCase,
	payments PaymentProvider,
	logger *slog.Logger,
) *PipelineFacade {
	return &PipelineFacade{
		auth:     auth,
		orders:   orders,
		quotes:   quotes,
		profiles: profiles,
		workflow: workflow,
		payments: payments,
		logger:   logger,
	}
}

func (f *PipelineFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *PipelineFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PipelineFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PipelineFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *PipelineFacade) CreateOrder(ctx context.Context, userID int64, input usecase.CreateOrderInput) (*model.Order, *model.OrderEvent, error) {
	return f.orders.Create(ctx, userID, input)
}

func (f *PipelineFacade) Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID, status)
}

func (f *PipelineFacade) OrderWithEvents(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderEvent, error) {
	return f.orders.GetWithEvents(ctx, userID, orderID)
}

func (f *PipelineFacade) QuoteOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.quotes.Quote(ctx, userID, orderID)
}

func (f *PipelineFacade) Profiles(ctx context.Context) ([]model.PrinterProfile, []model.MaterialProfile, error) {
	return f.profiles.List(ctx)
}

func (f *PipelineFacade) AdminOrders(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	return f.orders.AdminList(ctx, filter)
}

func (f *PipelineFacade) AdminOrderWithEvents(ctx context.Context, orderID string) (*model.Order, []model.OrderEvent, error) {
	return f.orders.AdminGetWithEvents(ctx, orderID)
}

// TransitionOrder applies an operator-driven status change. A move to
// REFUNDED first settles the refund with the payment provider; the status
// only changes once the provider accepted the refund, so a provider outage
// leaves the order where it was.
func (f *PipelineFacade) TransitionOrder(ctx context.Context, actorID int64, orderID string, input usecase.TransitionInput) (*model.Order, *model.OrderEvent, error) {
	if input.To == model.StatusRefunded {
		order, err := f.orders.Get(ctx, orderID)
		if err != nil {
			return nil, nil, err
		}
		if order.PaymentIntentID != nil {
			if err := f.payments.Refund(ctx, *order.PaymentIntentID); err != nil {
				return nil, nil, err
			}
		} else {
			f.logger.Warn("refund without payment intent, skipping provider call",
				slog.String("order_id", orderID))
		}
	}

	return f.workflow.Transition(ctx, model.TransitionRequest{
		OrderID:        orderID,
		To:             input.To,
		Message:        input.Message,
		TrackingNumber: input.TrackingNumber,
		LabelURL:       input.LabelURL,
		FailureReason:  input.FailureReason,
		ActorUserID:    &actorID,
	})
}

// OrdersAwaitingPayment feeds the payment watcher with quoted orders that
// carry a checkout session.
func (f *PipelineFacade) OrdersAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.AwaitingPayment(ctx, limit)
}

func (f *PipelineFacade) PaymentSession(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	return f.payments.SessionStatus(ctx, sessionID)
}

// ConfirmPayment moves a quoted order to PAID once the provider reported the
// session settled.
func (f *PipelineFacade) ConfirmPayment(ctx context.Context, orderID string, paymentIntentID *string) error {
	message := "Payment confirmed"
	_, _, err := f.workflow.Transition(ctx, model.TransitionRequest{
		OrderID:         orderID,
		To:              model.StatusPaid,
		Message:         &message,
		PaymentIntentID: paymentIntentID,
	})
	return err
}
