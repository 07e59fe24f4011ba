package jazzy

import (
	"context"
	"log/slog"
	"time"

	"github.com/jazzy-go/jazzy/internal"
	"github.com/jazzy-go/jazzy/pkg/logger"
	"github.com/jazzy-go/jazzy/pkg/token"
	"github.com/jazzy-go/jazzy/pkg/validator"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle: routing, middleware,
	// authentication and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HTTPError is an error carrying an HTTP status code.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Response is the buffered per-request reply.
	Response = internal.Response

	// UploadedFile is a file received in a multipart form.
	UploadedFile = internal.UploadedFile

	// Claims is the open claim set carried by authentication tokens.
	Claims = token.Claims

	// Rules maps field names to validation rule strings.
	Rules = validator.Rules

	// ValidationErrors is the per-field validation failure report.
	ValidationErrors = validator.Errors

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Application environments.
const (
	EnvDevelopment = internal.EnvDevelopment
	EnvProduction  = internal.EnvProduction
)

// DefaultSecret is the fallback token signing secret used when neither
// WithSecret nor JAZZY_SECRET is provided. Never rely on it outside
// local development.
const DefaultSecret = internal.DefaultSecret

// New creates a new application with the given options.
//
// Example:
//
//	app := jazzy.New(
//	    jazzy.WithLogger("api", middlewares.RequestIDExtractor()),
//	    jazzy.WithHandlers(
//	        handlers.NewAuth(repo),
//	        handlers.NewPosts(repo),
//	    ),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided: the first is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets a custom error handler, consulted before the
// built-in conversion.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithSecret sets the token signing secret, overriding JAZZY_SECRET.
func WithSecret(secret string) Option {
	return internal.WithSecret(secret)
}

// WithEnv sets the application environment, overriding JAZZY_ENV.
func WithEnv(env string) Option {
	return internal.WithEnv(env)
}

// WithTokenService sets a pre-built token service (custom TTL or clock).
func WithTokenService(svc *token.Service) Option {
	return internal.WithTokenService(svc)
}

// WithLogger creates a JSON logger with a component name and optional
// context extractors. The component name is added to every log entry.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Run options

// Logger sets the runtime logger used for lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown deadline.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before the server starts accepting
// connections. A hook error aborts startup.
//
// Example:
//
//	jazzy.StartupHook(func(ctx context.Context) error {
//	    return db.Migrate(ctx, pool, migrations, "schema_migrations", log)
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function run during graceful shutdown.
//
// Example:
//
//	jazzy.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// BaseContext sets the root context the server lifetime is bound to.
// Cancelling it triggers graceful shutdown.
func BaseContext(ctx context.Context) RunOption {
	return internal.BaseContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying cause to an HTTPError for logging.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// Convenience constructors for common HTTP errors.
var (
	ErrBadRequest    = internal.ErrBadRequest
	ErrUnauthorized  = internal.ErrUnauthorized
	ErrForbidden     = internal.ErrForbidden
	ErrNotFound      = internal.ErrNotFound
	ErrConflict      = internal.ErrConflict
	ErrUnprocessable = internal.ErrUnprocessable
	ErrInternal      = internal.ErrInternal
)

// IsHTTPError reports whether err is (or wraps) an *HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts the HTTPError from err, or nil if absent.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// IsValidationError reports whether err is (or wraps) validation errors.
func IsValidationError(err error) bool {
	return validator.IsValidationError(err)
}

// Context helpers

// ContextValue retrieves a typed value stored with c.Set.
// Returns the zero value of T if the key is absent or of a different type.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := jazzy.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param retrieves a typed path parameter.
//
// Example:
//
//	id := jazzy.Param[int64](c, "id")
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a default value.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// BodyAs decodes the JSON request body into T on a best-effort basis.
// Pair it with c.Validate for strict input checking.
func BodyAs[T any](c Context) T {
	return internal.BodyAs[T](c)
}
