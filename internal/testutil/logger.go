package testutil

import (
	"io"
	"log/slog"
	"os"
)

// NewTestLogger creates a logger that writes to stderr, for tests where the
// log output is worth seeing on failure.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// NewNullLogger creates a logger that discards all output.
func NewNullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
