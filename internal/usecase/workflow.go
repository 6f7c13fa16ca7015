package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
)

// TransitionInput carries an operator's status change request.
type TransitionInput struct {
	To             model.OrderStatus
	Message        *string
	TrackingNumber *string
	LabelURL       *string
	FailureReason  *string
}

// WorkflowUseCase is the single gate for order status changes. Graph legality
// lives in model.ValidTransition; data-completeness rules live here; the
// repository applies the validated change atomically against a freshly read
// status, never one echoed by a client.
type WorkflowUseCase struct {
	orders repository.OrderRepository
}

// NewWorkflowUseCase constructs WorkflowUseCase.
func NewWorkflowUseCase(orders repository.OrderRepository) *WorkflowUseCase {
	return &WorkflowUseCase{orders: orders}
}

// Transition applies one status change. A FAILED target requires a non-empty
// reason before anything is read or written.
func (u *WorkflowUseCase) Transition(ctx context.Context, req model.TransitionRequest) (*model.Order, *model.OrderEvent, error) {
	if !req.To.Valid() {
		return nil, nil, domainErrors.ErrInvalidStatus
	}
	if req.To == model.StatusFailed {
		if req.FailureReason == nil || strings.TrimSpace(*req.FailureReason) == "" {
			return nil, nil, domainErrors.ErrMissingFailureReason
		}
	}
	return u.orders.ApplyTransition(ctx, req)
}
