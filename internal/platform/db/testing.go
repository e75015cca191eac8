package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/config"
)

// SetupSQLite opens a migrated SQLite database in a temporary directory.
func SetupSQLite(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.DB{
		Driver:       DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}

	conn, _, err := Connect(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := Migrate(context.Background(), conn, SQLite); err != nil {
		t.Fatal(err)
	}

	return conn
}

// SessionContext returns a context carrying a session that is closed when the test ends.
func SessionContext(t *testing.T, conn *sql.DB) context.Context {
	t.Helper()

	ctx := context.Background()
	s, err := OpenSession(ctx, conn, SQLite)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	return NewContextWithSession(ctx, s)
}
