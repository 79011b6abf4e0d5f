package auth

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/thangnstse171771/cakestory-market/internal/config"
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

func newTokenStrategy(p strategyParams) (Strategy, error) {
	switch p.Config.AuthStrategy {
	case "jwt":
		return NewJWTStrategy(p.Config.JWTSecret, Options{}), nil
	case "hmac":
		return NewHMACStrategy(p.Config.JWTSecret, Options{}), nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", p.Config.AuthStrategy)
	}
}
