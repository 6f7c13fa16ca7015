package repository

import (
	"context"

	"github.com/print4me/pipeline/internal/domain/model"
)

// EventRepository provides read-only access to the order event log. All
// writes happen through OrderRepository as part of a transition.
type EventRepository interface {
	ListByOrder(ctx context.Context, orderID string) ([]model.OrderEvent, error)
}
