package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/test"
	"github.com/print4me/pipeline/internal/usecase"
)

func TestOrderCreateAppliesDefaults(t *testing.T) {
	repo := test.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &test.EventRepositoryStub{})

	order, event, err := uc.Create(context.Background(), 7, usecase.CreateOrderInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.StatusNew {
		t.Errorf("status = %s, want NEW", order.Status)
	}
	if order.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", order.Quantity)
	}
	if order.LayerHeightMM != 0.2 {
		t.Errorf("layer height = %v, want default 0.2", order.LayerHeightMM)
	}
	if order.InfillPercent != 20 {
		t.Errorf("infill = %d, want default 20", order.InfillPercent)
	}
	if event == nil || event.ToStatus != model.StatusNew || event.FromStatus != nil {
		t.Errorf("creation event malformed: %+v", event)
	}
}

func TestOrderCreateKeepsSubmittedSettings(t *testing.T) {
	repo := test.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &test.EventRepositoryStub{})

	size := int64(2 * 1024 * 1024)
	order, _, err := uc.Create(context.Background(), 7, usecase.CreateOrderInput{
		LayerHeightMM:    0.12,
		InfillPercent:    45,
		Supports:         true,
		Quantity:         3,
		STLFileSizeBytes: &size,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.LayerHeightMM != 0.12 || order.InfillPercent != 45 || order.Quantity != 3 || !order.Supports {
		t.Errorf("submitted settings lost: %+v", order)
	}
	if order.UserID != 7 {
		t.Errorf("owner = %d, want 7", order.UserID)
	}
}

func TestOrderListRejectsUnknownStatus(t *testing.T) {
	uc := usecase.NewOrderUseCase(test.NewOrderRepositoryStub(), &test.EventRepositoryStub{})

	bogus := model.OrderStatus("SHIPPED")
	if _, err := uc.ListByUser(context.Background(), 1, &bogus); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestGetWithEventsScopedToOwner(t *testing.T) {
	repo := test.NewOrderRepositoryStub(&model.Order{ID: "o1", UserID: 1, Status: model.StatusNew})
	events := &test.EventRepositoryStub{Items: []model.OrderEvent{{OrderID: "o1", ToStatus: model.StatusNew}}}
	uc := usecase.NewOrderUseCase(repo, events)

	if _, _, err := uc.GetWithEvents(context.Background(), 2, "o1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("foreign order must read as not found, got %v", err)
	}

	order, timeline, err := uc.GetWithEvents(context.Background(), 1, "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "o1" || len(timeline) != 1 {
		t.Errorf("unexpected result: %+v, %d events", order, len(timeline))
	}
}

func TestAdminListValidatesStatusFilter(t *testing.T) {
	uc := usecase.NewOrderUseCase(test.NewOrderRepositoryStub(), &test.EventRepositoryStub{})

	bogus := model.OrderStatus("SHIPPED")
	_, _, err := uc.AdminList(context.Background(), repository.OrderListFilter{Status: &bogus})
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestAdminListFiltersByStatus(t *testing.T) {
	repo := test.NewOrderRepositoryStub(
		&model.Order{ID: "o1", UserID: 1, Status: model.StatusNew},
		&model.Order{ID: "o2", UserID: 2, Status: model.StatusPaid},
	)
	uc := usecase.NewOrderUseCase(repo, &test.EventRepositoryStub{})

	paid := model.StatusPaid
	orders, total, err := uc.AdminList(context.Background(), repository.OrderListFilter{Status: &paid, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != "o2" {
		t.Errorf("filter by status failed: total=%d orders=%+v", total, orders)
	}
}
