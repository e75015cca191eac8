package db_test

import (
	"errors"
	"testing"

	"github.com/ferdiebergado/usersvc/internal/platform/db"
)

func TestRebind(t *testing.T) {
	t.Parallel()

	const query = "UPDATE users SET name = ?, email = ? WHERE id = ?"

	tests := []struct {
		name    string
		dialect db.Dialect
		want    string
	}{
		{"sqlite keeps question marks", db.SQLite, query},
		{"postgres numbers placeholders", db.Postgres, "UPDATE users SET name = $1, email = $2 WHERE id = $3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.dialect.Rebind(query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		driver  string
		want    db.Dialect
		wantErr error
	}{
		{db.DriverPostgres, db.Postgres, nil},
		{db.DriverSQLite, db.SQLite, nil},
		{"mysql", db.Dialect{}, db.ErrUnsupportedDriver},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			t.Parallel()

			got, err := db.DialectFor(tt.driver)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DialectFor(%q) error = %v, want %v", tt.driver, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DialectFor(%q) = %+v, want %+v", tt.driver, got, tt.want)
			}
		})
	}
}
