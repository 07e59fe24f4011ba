package middlewares

import (
	"runtime"

	"github.com/jazzy-go/jazzy/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack traces in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that recovers from panics, logs them with a
// stack trace, and returns a PanicError for the error boundary to convert.
// The dispatch loop has its own last-resort recovery; this middleware adds
// the stack trace and the typed error.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if !cfg.DisablePrintStack {
						stack = make([]byte, cfg.StackSize)
						n := runtime.Stack(stack, false)
						stack = stack[:n]
					}

					if cfg.DisablePrintStack {
						c.LogError("panic recovered", "panic", r)
					} else {
						c.LogError("panic recovered", "panic", r, "stack", string(stack))
					}

					err = &PanicError{
						Value: r,
						Stack: stack,
					}
				}
			}()

			return next(c)
		}
	}
}
