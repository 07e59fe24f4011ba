package internal

import (
	"context"
	"log/slog"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

type runConfig struct {
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger sets the runtime logger used for lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return func(cfg *runConfig) {
		cfg.logger = l
	}
}

// ShutdownTimeout sets the graceful shutdown deadline.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(cfg *runConfig) {
		cfg.shutdownTimeout = d
	}
}

// StartupHook registers a function run before the server starts accepting
// connections (e.g., run migrations, warm caches). A hook error aborts
// startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		if fn != nil {
			cfg.startupHooks = append(cfg.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a function run during graceful shutdown
// (e.g., close the database pool).
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(cfg *runConfig) {
		if fn != nil {
			cfg.shutdownHooks = append(cfg.shutdownHooks, fn)
		}
	}
}

// BaseContext sets the root context the server lifetime is bound to.
// Cancelling it triggers graceful shutdown.
func BaseContext(ctx context.Context) RunOption {
	return func(cfg *runConfig) {
		cfg.baseCtx = ctx
	}
}
