package logger

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide logger. Log lines go to stderr so they
// never mix with command output meant for piping.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}
