package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newSigner),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(PasswordCost)
}

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) Signer {
	return NewHMACSigner(p.Config.SessionSecret)
}
