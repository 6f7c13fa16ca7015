package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/print4me/pipeline/internal/adapter/payments"
	"github.com/print4me/pipeline/internal/app"
	"github.com/print4me/pipeline/internal/config"
	"github.com/print4me/pipeline/internal/domain/repository"
	"github.com/print4me/pipeline/internal/storage/postgres"
	"github.com/print4me/pipeline/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		PaymentAPIAddress:   "http://localhost",
		TokenSecret:         "secret",
		TokenStrategy:       "hmac",
		PaymentPollInterval: time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxOrdersBatch:      1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()
	eventRepo := &test.EventRepositoryStub{}
	profileRepo := &test.ProfileRepositoryStub{}
	providerStub := &test.PaymentProviderStub{}

	var facade *app.PipelineFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.EventRepository(eventRepo)),
			fx.Replace(repository.ProfileRepository(profileRepo)),
			fx.Replace(payments.Client(providerStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected pipeline facade instance")
	}
}
