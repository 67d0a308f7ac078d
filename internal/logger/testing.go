package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger creates a logger for tests.
// By default, uses WARN level to keep test output quiet.
// Set TEST_DEBUG environment variable to enable debug logging in tests.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
