package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/jazzy-go/jazzy/pkg/logger"
	"github.com/jazzy-go/jazzy/pkg/token"
	"github.com/jazzy-go/jazzy/pkg/validator"
)

// Application environments. Development mode exposes failure messages in
// 500 bodies; production mode replaces them with a generic text.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Environment variables consulted when no option overrides them.
const (
	// EnvKeySecret names the token signing secret variable.
	EnvKeySecret = "JAZZY_SECRET"

	// EnvKeyEnv names the application environment variable.
	EnvKeyEnv = "JAZZY_ENV"
)

// DefaultSecret is the fallback signing secret. It is intentionally public
// and must be overridden via JAZZY_SECRET (or WithSecret) in production —
// tokens signed with it are forgeable by anyone.
const DefaultSecret = "jazzy-insecure-secret"

// App is the application's composition root. It owns the route table,
// global middleware, and the token service, and implements http.Handler as
// the driver-adapter entry point.
//
// Lifecycle: register routes (single-threaded, at startup), Seal, serve.
// After Seal the route table is read-only and matched concurrently without
// locking; registering past that point panics.
type App struct {
	routes       *RouteTable
	root         *router
	middlewares  []Middleware
	handlers     []Handler
	errorHandler ErrorHandler
	logger       *slog.Logger
	tokens       *token.Service
	env          string
	secret       string

	composed HandlerFunc
	sealOnce sync.Once
}

// New creates an application with the given options. The signing secret
// and environment fall back to JAZZY_SECRET / JAZZY_ENV, then to insecure
// development defaults.
func New(opts ...Option) *App {
	a := &App{
		routes: newRouteTable(),
		logger: logger.NewNope(),
	}
	a.root = &router{table: a.routes}

	for _, opt := range opts {
		opt(a)
	}

	if a.secret == "" {
		a.secret = os.Getenv(EnvKeySecret)
	}
	if a.secret == "" {
		a.secret = DefaultSecret
	}
	if a.env == "" {
		a.env = os.Getenv(EnvKeyEnv)
	}
	if a.env == "" {
		a.env = EnvDevelopment
	}

	if a.tokens == nil {
		svc, err := token.New(a.secret)
		if err != nil {
			panic(fmt.Sprintf("jazzy: token service: %v", err))
		}
		a.tokens = svc
	}

	for _, h := range a.handlers {
		h.Routes(a.root)
	}

	return a
}

// Router returns the root registration facade. Handlers passed via
// WithHandlers are already registered; use this for inline routes.
func (a *App) Router() Router {
	return a.root
}

// Route registration surface, delegating to the root scope.

func (a *App) GET(path string, h HandlerFunc, mw ...Middleware) {
	a.root.GET(path, h, mw...)
}

func (a *App) POST(path string, h HandlerFunc, mw ...Middleware) {
	a.root.POST(path, h, mw...)
}

func (a *App) PUT(path string, h HandlerFunc, mw ...Middleware) {
	a.root.PUT(path, h, mw...)
}

func (a *App) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	a.root.PATCH(path, h, mw...)
}

func (a *App) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	a.root.DELETE(path, h, mw...)
}

func (a *App) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	a.root.OPTIONS(path, h, mw...)
}

func (a *App) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	a.root.HEAD(path, h, mw...)
}

func (a *App) Group(fn func(r Router), mw ...Middleware) {
	a.root.Group(fn, mw...)
}

func (a *App) RouteGroup(prefix string, fn func(r Router), mw ...Middleware) {
	a.root.Route(prefix, fn, mw...)
}

// Use appends global middleware. Global middleware wraps the dispatch loop
// itself, so it observes every request — including ones that end in a 404.
func (a *App) Use(mw ...Middleware) {
	a.middlewares = append(a.middlewares, mw...)
}

// Seal freezes the route table and composes the global middleware chain
// around the dispatch loop. Idempotent; called automatically by Run.
func (a *App) Seal() {
	a.sealOnce.Do(func() {
		a.routes.seal()
		a.composed = chain(a.dispatch, a.middlewares...)
	})
}

// Sealed reports whether Seal has run.
func (a *App) Sealed() bool {
	return a.composed != nil
}

// dispatch is the terminal handler of the global chain: resolve the route,
// install path parameters, and invoke the route's composed handler. A miss
// is a plain-text 404, not an error.
func (a *App) dispatch(c Context) error {
	route, params := a.routes.match(c.Method(), c.Path())
	if route == nil {
		return c.Status(http.StatusNotFound).Text("404 page not found")
	}
	if rc, ok := c.(*requestContext); ok && len(params) > 0 {
		rc.setParams(params)
	}
	return route.handler(c)
}

// ServeHTTP is the driver-adapter entry point: build the Context, run the
// composed handler, convert any failure into a response, and flush the
// buffered response to the wire. No failure escapes to the transport.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Seal()

	c := newContext(r, a.tokens, a.logger)

	if err := a.invoke(c); err != nil {
		a.convertError(c, err)
	}

	if err := c.response.flush(w); err != nil {
		a.logger.ErrorContext(r.Context(), "response write failed", slog.Any("error", err))
	}
}

// invoke runs the composed handler, turning panics into errors so they hit
// the same conversion point as returned failures.
func (a *App) invoke(c *requestContext) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return a.composed(c)
}

// convertError is the single point where failures become responses.
// Validation failures carry their full per-field report; HTTPErrors keep
// their status; everything else is a 500 whose body depends on the
// environment.
func (a *App) convertError(c *requestContext, err error) {
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil {
			return
		}
	}

	if ve := validator.AsValidationError(err); ve != nil {
		_ = c.Status(http.StatusUnprocessableEntity).JSON(map[string]any{"errors": ve.Fields})
		return
	}

	if he := AsHTTPError(err); he != nil {
		if he.Err != nil {
			c.LogError("request failed", slog.Int("status", he.Code), slog.Any("error", he.Err))
		}
		_ = c.Status(he.Code).JSON(map[string]string{"error": he.Message})
		return
	}

	c.LogError("unhandled handler failure", slog.Any("error", err))
	msg := "Internal Server Error"
	if a.env == EnvDevelopment {
		msg = err.Error()
	}
	_ = c.Status(http.StatusInternalServerError).JSON(map[string]string{"error": msg})
}

// Env returns the application environment (development or production).
func (a *App) Env() string {
	return a.env
}

// Tokens returns the application's token service.
func (a *App) Tokens() *token.Service {
	return a.tokens
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run seals the application, starts the HTTP server on addr, and blocks
// until shutdown.
//
// Example:
//
//	app := jazzy.New(
//	    jazzy.WithHandlers(handlers.NewAuth(users)),
//	)
//	err := app.Run(":8080", jazzy.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	a.Seal()

	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
