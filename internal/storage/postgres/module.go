package postgres

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"

	"github.com/print4me/pipeline/internal/config"
	domainErrors "github.com/print4me/pipeline/internal/domain/errors"
	"github.com/print4me/pipeline/internal/domain/model"
	"github.com/print4me/pipeline/internal/domain/repository"
	pkgAuth "github.com/print4me/pipeline/internal/pkg/auth"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.EventRepository { return s.Events() },
		func(s *Storage) repository.ProfileRepository { return s.Profiles() },
	),
	fx.Invoke(registerLifecycle),
	fx.Invoke(bootstrapAdmin),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

type bootstrapParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Users     repository.UserRepository
	Hasher    pkgAuth.PasswordHasher
	Logger    *slog.Logger
}

// bootstrapAdmin seeds the operator account named in configuration so a fresh
// deployment has someone able to drive the workflow.
func bootstrapAdmin(p bootstrapParams) {
	if p.Config.AdminLogin == "" || p.Config.AdminPassword == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := p.Users.GetByLogin(ctx, p.Config.AdminLogin)
			if err == nil {
				return nil
			}
			if !errors.Is(err, domainErrors.ErrNotFound) {
				return err
			}

			hash, err := p.Hasher.Hash(p.Config.AdminPassword)
			if err != nil {
				return err
			}
			if _, err := p.Users.Create(ctx, p.Config.AdminLogin, hash, model.RoleAdmin); err != nil &&
				!errors.Is(err, domainErrors.ErrAlreadyExists) {
				return err
			}
			p.Logger.Info("admin account ready", slog.String("login", p.Config.AdminLogin))
			return nil
		},
	})
}
