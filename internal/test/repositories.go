package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.UserRole) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in-memory and mimics the transactional
// transition semantics of the real store. Function overrides win over the
// default behaviour.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, *model.Order) (*model.Order, *model.OrderEvent, error)
	GetByIDFn         func(context.Context, string) (*model.Order, error)
	ApplyTransitionFn func(context.Context, model.TransitionRequest) (*model.Order, *model.OrderEvent, error)

	Orders map[string]*model.Order
	Events []model.OrderEvent
	Next   int
	Err    error
}

// NewOrderRepositoryStub constructs stub with initialized storage.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
	for _, o := range orders {
		s.Orders[o.ID] = o
	}
	return s
}

// Create stores the order in its initial status with a creation event.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, *model.OrderEvent, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", s.Next)
		s.Next++
	}
	order.Status = model.StatusNew
	if order.QuoteCurrency == "" {
		order.QuoteCurrency = "EUR"
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.Orders[order.ID] = order

	message := "Order created"
	event := model.OrderEvent{
		OrderID:   order.ID,
		ToStatus:  model.StatusNew,
		Message:   &message,
		CreatedAt: now,
	}
	s.Events = append(s.Events, event)
	return order, &event, nil
}

// GetByID fetches order by id or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByUser fetches order by id scoped to its owner.
func (s *OrderRepositoryStub) GetByUser(ctx context.Context, userID int64, id string) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, optionally filtered by status.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID != userID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

// ListAll returns every stored order matching the filter.
func (s *OrderRepositoryStub) ListAll(ctx context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var out []model.Order
	for _, o := range s.Orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Query != "" && !strings.Contains(o.ID, filter.Query) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

// SelectAwaitingPayment returns quoted orders that carry a checkout session.
func (s *OrderRepositoryStub) SelectAwaitingPayment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.Status == model.StatusQuoted && o.CheckoutSessionID != nil {
			out = append(out, *o)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// ApplyTransition mimics the datastore's transactional status change:
// re-read the current status, validate the edge, apply effects, append event.
func (s *OrderRepositoryStub) ApplyTransition(ctx context.Context, req model.TransitionRequest) (*model.Order, *model.OrderEvent, error) {
	if s.ApplyTransitionFn != nil {
		return s.ApplyTransitionFn(ctx, req)
	}
	if s.Err != nil {
		return nil, nil, s.Err
	}
	order, ok := s.Orders[req.OrderID]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	if !model.ValidTransition(order.Status, req.To) {
		return nil, nil, domainErrors.ErrInvalidTransition
	}

	now := time.Now()
	from := order.Status
	effects := model.ComputeEffects(order, req, now)

	order.Status = req.To
	order.UpdatedAt = now
	if effects.PaidAt != nil {
		order.PaidAt = effects.PaidAt
	}
	if effects.TrackingNumber != nil {
		order.TrackingNumber = effects.TrackingNumber
	}
	if effects.LabelURL != nil {
		order.LabelURL = effects.LabelURL
	}
	if effects.FailureReason != nil {
		order.FailureReason = effects.FailureReason
	}
	if effects.PaymentIntentID != nil {
		order.PaymentIntentID = effects.PaymentIntentID
	}
	if req.Quote != nil {
		breakdown := req.Quote.Breakdown
		estimate := req.Quote.Estimate
		constants := req.Quote.Constants
		total := req.Quote.TotalCents
		order.QuoteBreakdown = &breakdown
		order.SlicerEstimate = &estimate
		order.PricingConstants = &constants
		order.QuoteTotalCents = &total
		if req.Quote.Currency != "" {
			order.QuoteCurrency = req.Quote.Currency
		}
	}

	message := req.Message
	if message == nil {
		text := "Status changed to " + string(req.To)
		message = &text
	}
	event := model.OrderEvent{
		OrderID:     order.ID,
		FromStatus:  &from,
		ToStatus:    req.To,
		Message:     message,
		ActorUserID: req.ActorUserID,
		CreatedAt:   now,
	}
	s.Events = append(s.Events, event)
	return order, &event, nil
}

// EventRepositoryStub serves a preconfigured timeline.
type EventRepositoryStub struct {
	ListFn func(context.Context, string) ([]model.OrderEvent, error)
	Items  []model.OrderEvent
	Err    error
}

// ListByOrder returns configured events for the order.
func (s *EventRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.OrderEvent
	for _, e := range s.Items {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ProfileRepositoryStub serves preconfigured printer and material profiles.
type ProfileRepositoryStub struct {
	Printers  []model.PrinterProfile
	Materials []model.MaterialProfile
	Err       error
}

// ListActivePrinters returns configured printers.
func (s *ProfileRepositoryStub) ListActivePrinters(ctx context.Context) ([]model.PrinterProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Printers, nil
}

// ListActiveMaterials returns configured materials.
func (s *ProfileRepositoryStub) ListActiveMaterials(ctx context.Context) ([]model.MaterialProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Materials, nil
}

// GetPrinter finds a printer profile by id.
func (s *ProfileRepositoryStub) GetPrinter(ctx context.Context, id string) (*model.PrinterProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Printers {
		if s.Printers[i].ID == id {
			return &s.Printers[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetMaterial finds a material profile by id.
func (s *ProfileRepositoryStub) GetMaterial(ctx context.Context, id string) (*model.MaterialProfile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Materials {
		if s.Materials[i].ID == id {
			return &s.Materials[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
