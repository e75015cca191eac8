package db_test

import (
	"context"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/platform/db"
)

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	conn := db.SetupSQLite(t)

	if err := db.Migrate(context.Background(), conn, db.SQLite); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var applied int
	if err := conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Errorf("applied migrations = %d, want 1", applied)
	}

	if _, err := conn.Exec("SELECT id, name, sur_name, email, password FROM users"); err != nil {
		t.Errorf("users table not usable: %v", err)
	}
}
