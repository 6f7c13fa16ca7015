package auth

import (
	"go.uber.org/fx"

	"github.com/print4me/pipeline/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.TokenStrategy == "jwt" {
		return NewJWTStrategy(p.Config.TokenSecret, Options{})
	}
	return NewHMACStrategy(p.Config.TokenSecret, Options{})
}
