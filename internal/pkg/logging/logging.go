package logging

import (
	"io"
	"log/slog"
	"strings"
)

const envProduction = "production"

// SetupLogger installs the default slog logger. Production environments log JSON,
// everything else logs human readable text.
func SetupLogger(appEnv, logLevel string, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(logLevel),
		AddSource: appEnv != envProduction,
	}

	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if appEnv == envProduction {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a level name to a slog.Level, defaulting to Info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
