package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/middleware"
	"github.com/ferdiebergado/usersvc/internal/platform/db"
	"github.com/ferdiebergado/usersvc/internal/user"
)

type App struct {
	server          *http.Server
	config          *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration

	setupOnce sync.Once
	setupErr  error
}

func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) *App {
	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	return &App{
		server:          server,
		config:          cfg,
		provider:        provider,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
	}
}

// Handler registers the middlewares and routes on first use and returns the
// application's root handler.
func (a *App) Handler() (http.Handler, error) {
	a.setupOnce.Do(func() {
		for _, mw := range a.middlewares {
			a.provider.Router.Use(mw)
		}
		a.setupErr = a.setupRoutes()
	})
	return a.provider.Router, a.setupErr
}

func (a *App) setupRoutes() error {
	repo, err := db.NewRepository(user.Table)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}

	svc := user.NewService(repo, a.provider.Payments, a.provider.Hasher)
	handler := user.NewHandler(svc)
	scope := middleware.Scope(a.provider.DB, a.provider.Dialect)
	mountUserRoutes(a.provider.Router, handler, a.provider.Validator, scope, a.config.Server.MaxBodyBytes)

	a.provider.Router.Get("/health", healthCheck(a.provider.DB, a.config.DB.PingTimeout.Duration))

	return nil
}

// Start serves until ctx is done or the server fails.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.Handler(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
		serverErr <- nil
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
