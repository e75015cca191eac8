package app

import (
	"database/sql"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/payment"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
	"github.com/ferdiebergado/usersvc/internal/platform/hash"
	"github.com/ferdiebergado/usersvc/internal/platform/jwt"
	"github.com/ferdiebergado/usersvc/internal/platform/router"
	"github.com/ferdiebergado/usersvc/internal/platform/validation"
	"github.com/ferdiebergado/usersvc/internal/user"
)

// Provider holds the dependencies shared by every route.
type Provider struct {
	DB        *sql.DB
	Dialect   db.Dialect
	Signer    jwt.Signer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	Payments  user.PaymentGateway
}

func newProvider(cfg *config.Config, conn *sql.DB, dialect db.Dialect) *Provider {
	signer := jwt.NewGolangJWTSigner(cfg.JWT, cfg.App.Key)

	return &Provider{
		DB:        conn,
		Dialect:   dialect,
		Signer:    signer,
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, cfg.App.Key),
		Router:    router.NewGoexpressRouter(),
		Payments:  payment.NewHTTPGateway(cfg.Payment, cfg.JWT, signer),
	}
}
