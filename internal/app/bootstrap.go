package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/middleware"
	envx "github.com/ferdiebergado/usersvc/internal/pkg/env"
	"github.com/ferdiebergado/usersvc/internal/pkg/logging"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
)

const (
	defaultConfigFile = "config.json"
	envProduction     = "production"
)

// Run loads the configuration, connects to the database and serves until
// ctx is canceled.
func Run(ctx context.Context) error {
	slog.Info("Initializing...")

	if os.Getenv("ENV") != envProduction {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load(envx.Env("CONFIG_FILE", defaultConfigFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	conn, dialect, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.DB.Migrate {
		if err := db.Migrate(ctx, conn, dialect); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.ContextGuard,
		middleware.CheckContentType,
	}

	api := New(cfg, newProvider(cfg, conn, dialect), middlewares)
	if err := api.Start(ctx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}
