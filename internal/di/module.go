package di

import (
	"go.uber.org/fx"

	"github.com/print4me/pipeline/internal/adapter/payments"
	"github.com/print4me/pipeline/internal/app"
	"github.com/print4me/pipeline/internal/config"
	"github.com/print4me/pipeline/internal/logger"
	"github.com/print4me/pipeline/internal/pkg/auth"
	"github.com/print4me/pipeline/internal/server/http/handlers"
	"github.com/print4me/pipeline/internal/server/http/router"
	"github.com/print4me/pipeline/internal/storage/postgres"
	"github.com/print4me/pipeline/internal/usecase"
)

// Module assembles the full application graph. Extra options override or
// extend the defaults, which the tests use to swap implementations.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payments.Module,
		usecase.Module,
		fx.Provide(func(client payments.Client) app.PaymentProvider { return client }),
		fx.Provide(func(facade *app.PipelineFacade) handlers.WorkflowFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
