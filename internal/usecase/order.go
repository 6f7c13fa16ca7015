package usecase

import (
	"context"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
)

// CreateOrderInput carries the print settings a customer submits.
type CreateOrderInput struct {
	PrinterProfileID  *string
	MaterialProfileID *string
	LayerHeightMM     float64
	InfillPercent     int
	Supports          bool
	Quantity          int
	Notes             *string
	STLFilename       *string
	STLFileSizeBytes  *int64
	CheckoutSessionID *string
	ShippingAddress   *model.ShippingAddress
}

// OrderUseCase encapsulates order creation and retrieval.
type OrderUseCase struct {
	orders repository.OrderRepository
	events repository.EventRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, events repository.EventRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, events: events}
}

// Create registers a new order in its initial status and records the creation
// event.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, input CreateOrderInput) (*model.Order, *model.OrderEvent, error) {
	if input.Quantity < 1 {
		input.Quantity = 1
	}
	if input.LayerHeightMM <= 0 {
		input.LayerHeightMM = 0.2
	}
	if input.InfillPercent <= 0 {
		input.InfillPercent = 20
	}

	order := &model.Order{
		UserID:            userID,
		PrinterProfileID:  input.PrinterProfileID,
		MaterialProfileID: input.MaterialProfileID,
		LayerHeightMM:     input.LayerHeightMM,
		InfillPercent:     input.InfillPercent,
		Supports:          input.Supports,
		Quantity:          input.Quantity,
		Notes:             input.Notes,
		STLFilename:       input.STLFilename,
		STLFileSizeBytes:  input.STLFileSizeBytes,
		CheckoutSessionID: input.CheckoutSessionID,
		ShippingAddress:   input.ShippingAddress,
	}
	return u.orders.Create(ctx, order)
}

// ListByUser returns the user's orders, optionally narrowed to one status.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	if status != nil && !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.ListByUser(ctx, userID, status)
}

// GetWithEvents fetches one of the user's orders with its event timeline.
// Another user's order is indistinguishable from a missing one.
func (u *OrderUseCase) GetWithEvents(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderEvent, error) {
	order, err := u.orders.GetByUser(ctx, userID, orderID)
	if err != nil {
		return nil, nil, err
	}
	events, err := u.events.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, events, nil
}

// Get fetches any order by id, without ownership scoping.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// AdminList returns all orders matching the filter plus a total count.
func (u *OrderUseCase) AdminList(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, domainErrors.ErrInvalidStatus
	}
	return u.orders.ListAll(ctx, filter)
}

// AdminGetWithEvents fetches any order with its event timeline.
func (u *OrderUseCase) AdminGetWithEvents(ctx context.Context, orderID string) (*model.Order, []model.OrderEvent, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	events, err := u.events.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, events, nil
}

// AwaitingPayment returns quoted orders carrying a checkout session id.
func (u *OrderUseCase) AwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectAwaitingPayment(ctx, limit)
}
