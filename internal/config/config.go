package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ferdiebergado/usersvc/internal/pkg/env"
	timex "github.com/ferdiebergado/usersvc/internal/pkg/time"
)

type App struct {
	Env      string `json:"env,omitempty" env:"ENV"`
	Key      string `json:"-" env:"KEY"`
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL"`
}

func (a *App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", a.Env),
		slog.String("key", "*"),
		slog.String("log_level", a.LogLevel),
	)
}

type Server struct {
	Port            int            `json:"port,omitempty" env:"PORT"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty" env:"DB_DRIVER"`
	Path            string         `json:"path,omitempty" env:"DB_PATH"`
	Migrate         bool           `json:"migrate,omitempty" env:"DB_MIGRATE"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`
}

type JWT struct {
	JTILength uint32         `json:"jti_length,omitempty"`
	Issuer    string         `json:"issuer,omitempty"`
	TTL       timex.Duration `json:"ttl,omitempty"`
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Payment struct {
	BaseURL string         `json:"base_url,omitempty" env:"PAYMENT_BASE_URL"`
	Timeout timex.Duration `json:"timeout,omitempty"`
}

type Config struct {
	App     *App     `json:"app,omitempty"`
	Server  *Server  `json:"server,omitempty"`
	DB      *DB      `json:"db,omitempty"`
	JWT     *JWT     `json:"jwt,omitempty"`
	Argon2  *Argon2  `json:"argon2,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("app", c.App),
		slog.Any("server", c.Server),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("argon2", c.Argon2),
		slog.Any("payment", c.Payment),
	)
}

var ErrMissingKey = errors.New("config: security key is not set")

// Load reads the JSON config file and overrides its values from the environment.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := env.OverrideStruct(cfg); err != nil {
		return nil, fmt.Errorf("override config with env: %w", err)
	}

	if cfg.App.Key == "" {
		return nil, ErrMissingKey
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	configFile, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(configFile, &cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return &cfg, nil
}
