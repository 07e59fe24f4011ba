package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger writing to stdout, with optional context
// extractors applied on every log call.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewContextHandler(h, extractors...))
}

// NewNope creates a logger that discards everything. Used as the default
// when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
