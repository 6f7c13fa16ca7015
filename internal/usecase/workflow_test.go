package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/test"
	"github.com/print4me/pipeline/internal/usecase"
)

func strPtr(s string) *string { return &s }

func TestWorkflowRejectsUnknownStatus(t *testing.T) {
	repo := test.NewOrderRepositoryStub()
	repo.ApplyTransitionFn = func(context.Context, model.TransitionRequest) (*model.Order, *model.OrderEvent, error) {
		t.Fatal("repository must not be reached for unknown status")
		return nil, nil, nil
	}
	uc := usecase.NewWorkflowUseCase(repo)

	_, _, err := uc.Transition(context.Background(), model.TransitionRequest{OrderID: "o1", To: "SHIPPED"})
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestWorkflowRequiresFailureReason(t *testing.T) {
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", Status: model.StatusPrinting})
	uc := usecase.NewWorkflowUseCase(repo)

	_, _, err := uc.Transition(context.Background(), model.TransitionRequest{OrderID: "o1", To: model.StatusFailed})
	if !errors.Is(err, domainErrors.ErrMissingFailureReason) {
		t.Fatalf("expected missing failure reason error, got %v", err)
	}

	_, _, err = uc.Transition(context.Background(), model.TransitionRequest{
		OrderID: "o1", To: model.StatusFailed, FailureReason: strPtr("   "),
	})
	if !errors.Is(err, domainErrors.ErrMissingFailureReason) {
		t.Fatalf("whitespace reason should be rejected, got %v", err)
	}

	if order, _ := repo.GetByID(context.Background(), "o1"); order.Status != model.StatusPrinting {
		t.Fatalf("order status changed despite rejection: %s", order.Status)
	}
}

func TestWorkflowFailsOrderWithReason(t *testing.T) {
	actor := int64(9)
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", Status: model.StatusPrinting})
	uc := usecase.NewWorkflowUseCase(repo)

	order, event, err := uc.Transition(context.Background(), model.TransitionRequest{
		OrderID:       "o1",
		To:            model.StatusFailed,
		FailureReason: strPtr("nozzle jam"),
		ActorUserID:   &actor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.StatusFailed {
		t.Errorf("status = %s, want FAILED", order.Status)
	}
	if order.FailureReason == nil || *order.FailureReason != "nozzle jam" {
		t.Errorf("failure reason not persisted: %v", order.FailureReason)
	}
	if event.FromStatus == nil || *event.FromStatus != model.StatusPrinting {
		t.Errorf("event from status = %v, want PRINTING", event.FromStatus)
	}
	if event.ActorUserID == nil || *event.ActorUserID != actor {
		t.Errorf("event actor = %v, want %d", event.ActorUserID, actor)
	}
}

func TestWorkflowRejectsIllegalEdge(t *testing.T) {
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", Status: model.StatusPaid})
	uc := usecase.NewWorkflowUseCase(repo)

	_, _, err := uc.Transition(context.Background(), model.TransitionRequest{OrderID: "o1", To: model.StatusDelivered})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition error, got %v", err)
	}
	if len(repo.Events) != 0 {
		t.Errorf("rejected transition must not log events, got %d", len(repo.Events))
	}
}

func TestWorkflowTerminalStatusHasNoExit(t *testing.T) {
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", Status: model.StatusRefunded})
	uc := usecase.NewWorkflowUseCase(repo)

	for _, to := range []model.OrderStatus{model.StatusPaid, model.StatusNew, model.StatusDelivered} {
		if _, _, err := uc.Transition(context.Background(), model.TransitionRequest{OrderID: "o1", To: to}); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Errorf("REFUNDED -> %s: expected invalid transition, got %v", to, err)
		}
	}
}

func TestWorkflowWalksHappyPath(t *testing.T) {
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", Status: model.StatusNew})
	uc := usecase.NewWorkflowUseCase(repo)
	ctx := context.Background()

	path := []model.OrderStatus{
		model.StatusQuoted, model.StatusPaid, model.StatusSlicing,
		model.StatusReadyToPrint, model.StatusPrinting, model.StatusPrintDone,
		model.StatusWaitingDelivery, model.StatusOutForDelivery, model.StatusDelivered,
	}
	for _, to := range path {
		if _, _, err := uc.Transition(ctx, model.TransitionRequest{OrderID: "o1", To: to}); err != nil {
			t.Fatalf("transition to %s failed: %v", to, err)
		}
	}

	order, _ := repo.GetByID(ctx, "o1")
	if order.Status != model.StatusDelivered {
		t.Errorf("final status = %s, want DELIVERED", order.Status)
	}
	if order.PaidAt == nil {
		t.Error("paid_at was not stamped on PAID entry")
	}
	if len(repo.Events) != len(path) {
		t.Errorf("event count = %d, want %d", len(repo.Events), len(path))
	}
	for i, e := range repo.Events {
		if e.ToStatus != path[i] {
			t.Errorf("event %d to status = %s, want %s", i, e.ToStatus, path[i])
		}
	}
}

func TestWorkflowNotFound(t *testing.T) {
	uc := usecase.NewWorkflowUseCase(test.NewOrderRepositoryStub())
	_, _, err := uc.Transition(context.Background(), model.TransitionRequest{OrderID: "missing", To: model.StatusQuoted})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
