package internal

import (
	"log/slog"

	"github.com/jazzy-go/jazzy/pkg/logger"
	"github.com/jazzy-go/jazzy/pkg/token"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided: the first one given is the
// outermost and observes requests first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets a custom error handler, consulted before the
// built-in conversion. Returning nil marks the error handled; returning an
// error falls through to the default conversion.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithSecret sets the token signing secret, overriding JAZZY_SECRET.
func WithSecret(secret string) Option {
	return func(a *App) {
		a.secret = secret
	}
}

// WithEnv sets the application environment (development or production),
// overriding JAZZY_ENV.
func WithEnv(env string) Option {
	return func(a *App) {
		a.env = env
	}
}

// WithTokenService sets a pre-built token service. Overrides WithSecret.
func WithTokenService(svc *token.Service) Option {
	return func(a *App) {
		if svc != nil {
			a.tokens = svc
		}
	}
}

// WithLogger creates a JSON logger with a component name and optional
// context extractors. The component name is added to every log entry.
//
// Example:
//
//	jazzy.New(
//	    jazzy.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
