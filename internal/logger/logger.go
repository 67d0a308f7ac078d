// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "PLAYWISE_LOG_LEVEL"

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Source locations only help when debugging
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts DEBUG, INFO, WARN/WARNING or ERROR (any case) into a
// slog.Level. Unknown or empty values return fallback.
func ParseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// DefaultConfig returns the default logger configuration.
// PLAYWISE_LOG_LEVEL overrides the INFO default.
func DefaultConfig() Config {
	return Config{
		Level:  ParseLevel(os.Getenv(EnvLevel), slog.LevelInfo),
		Format: "text",
	}
}
