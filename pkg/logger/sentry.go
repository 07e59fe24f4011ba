package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration settings.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"environment"`
	// MinLevel selects which levels are delivered to Sentry as logs.
	// Errors always create Sentry issues.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes JSON to stdout and delivers
// warnings and errors to Sentry. With an empty DSN, or when Sentry init
// fails, it falls back to stdout only.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(stdoutHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdoutHandler, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(NewContextHandler(combined, extractors...))
}
