// Package db provides the relational store: connections, migrations,
// request scoped sessions and a generic repository over entity types.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"

	"github.com/ferdiebergado/usersvc/internal/config"
	"github.com/ferdiebergado/usersvc/internal/pkg/env"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
	ErrNoSession         = errors.New("db: no session in context")
	ErrSessionClosed     = errors.New("db: session is closed")
	ErrAmbiguous         = errors.New("db: query returned more than one row")
	ErrUnknownColumn     = errors.New("db: unknown column")
	ErrInvalidTable      = errors.New("db: invalid table mapping")
)

// Connect opens and validates a database connection pool for the configured driver.
func Connect(ctx context.Context, cfg *config.DB) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	slog.Info("Connecting to the database...", "driver", dialect.Driver)

	dsn, err := dataSourceName(dialect, cfg)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("build data source name: %w", err)
	}

	conn, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime.Duration)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime.Duration)

	pingCtx := ctx
	if timeout := cfg.PingTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, Dialect{}, fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Connected to the database.", "driver", dialect.Driver)

	return conn, dialect, nil
}

func dataSourceName(dialect Dialect, cfg *config.DB) (string, error) {
	if dialect == SQLite {
		return "file:" + cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	}

	required := map[string]string{"DB_HOST": "", "DB_USER": "", "DB_PASS": "", "DB_NAME": ""}
	for key := range required {
		val, err := env.Must(key)
		if err != nil {
			return "", err
		}
		required[key] = val
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(required["DB_USER"], required["DB_PASS"]),
		Host:     net.JoinHostPort(required["DB_HOST"], env.Env("DB_PORT", "5432")),
		Path:     required["DB_NAME"],
		RawQuery: "sslmode=" + url.QueryEscape(env.Env("DB_SSLMODE", "disable")),
	}
	return dsn.String(), nil
}
