package model

import "time"

// OrderEvent is one immutable audit record of a status change. FromStatus is
// nil only for the creation event. Events are append-only: written once by the
// workflow mutator and never updated or deleted.
type OrderEvent struct {
	ID          string
	OrderID     string
	FromStatus  *OrderStatus
	ToStatus    OrderStatus
	Message     *string
	ActorUserID *int64
	CreatedAt   time.Time
}
