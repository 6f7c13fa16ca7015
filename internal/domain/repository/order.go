package repository

import (
	"context"

	"github.com/print4me/pipeline/internal/domain/model"
)

// OrderListFilter narrows admin order listings.
type OrderListFilter struct {
	Status *model.OrderStatus
	Query  string
	Offset int
	Limit  int
}

// OrderRepository describes persistence operations with pipeline orders.
// ApplyTransition is the only write path for status, paid_at, tracking_number,
// label_url and failure_reason; every other component reads order state only.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, *model.OrderEvent, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByUser(ctx context.Context, userID int64, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error)
	ListAll(ctx context.Context, filter OrderListFilter) ([]model.Order, int64, error)
	SelectAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error)
	ApplyTransition(ctx context.Context, req model.TransitionRequest) (*model.Order, *model.OrderEvent, error)
}
