package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ferdiebergado/usersvc/internal/config"
)

const testConfig = `{
  "app": {"env": "development", "log_level": "info"},
  "server": {"port": 8888, "read_timeout": "5s", "shutdown_timeout": "10s", "max_body_bytes": 1024},
  "db": {"driver": "pgx", "max_open_conns": 5, "ping_timeout": "3s"},
  "payment": {"base_url": "http://payments.local", "timeout": "2s"}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testConfig)

	t.Setenv("KEY", "supersecret")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v, want: nil", path, err)
	}

	if cfg.App.Key != "supersecret" {
		t.Errorf("cfg.App.Key = %q, want: %q", cfg.App.Key, "supersecret")
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("cfg.Server.Port = %d, want: %d", cfg.Server.Port, 9999)
	}

	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("cfg.Server.ReadTimeout = %v, want: %v", cfg.Server.ReadTimeout.Duration, 5*time.Second)
	}

	if cfg.DB.Driver != "sqlite" {
		t.Errorf("cfg.DB.Driver = %q, want: %q", cfg.DB.Driver, "sqlite")
	}

	if cfg.Payment.BaseURL != "http://payments.local" {
		t.Errorf("cfg.Payment.BaseURL = %q, want: %q", cfg.Payment.BaseURL, "http://payments.local")
	}
}

func TestLoad_MissingKey(t *testing.T) {
	path := writeConfig(t, testConfig)
	t.Setenv("KEY", "")

	_, err := config.Load(path)
	if !errors.Is(err, config.ErrMissingKey) {
		t.Errorf("config.Load(%q) = %v, want: %v", path, err, config.ErrMissingKey)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"Missing file", func(t *testing.T) string { t.Helper(); return filepath.Join(t.TempDir(), "none.json") }},
		{"Malformed json", func(t *testing.T) string { t.Helper(); return writeConfig(t, `{"server":`) }},
		{"Invalid duration", func(t *testing.T) string { t.Helper(); return writeConfig(t, `{"server":{"read_timeout":"soon"}}`) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := tc.path(t)
			if _, err := config.Load(path); err == nil {
				t.Errorf("config.Load(%q) = nil error, want: error", path)
			}
		})
	}
}
