package handlers

import (
	"context"

	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, input usecase.CreateOrderInput) (*model.Order, *model.OrderEvent, error)
	Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error)
	OrderWithEvents(ctx context.Context, userID int64, orderID string) (*model.Order, []model.OrderEvent, error)
	QuoteOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error)
}

// ProfileFacade lists printer and material catalogs.
type ProfileFacade interface {
	Profiles(ctx context.Context) ([]model.PrinterProfile, []model.MaterialProfile, error)
}

// AdminFacade provides the operator's order management operations.
type AdminFacade interface {
	AdminOrders(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error)
	AdminOrderWithEvents(ctx context.Context, orderID string) (*model.Order, []model.OrderEvent, error)
	TransitionOrder(ctx context.Context, actorID int64, orderID string, input usecase.TransitionInput) (*model.Order, *model.OrderEvent, error)
}

// WorkflowFacade aggregates the full set of operations used across handlers.
type WorkflowFacade interface {
	AuthFacade
	OrderFacade
	ProfileFacade
	AdminFacade
}
