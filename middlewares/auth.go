package middlewares

import (
	"github.com/jazzy-go/jazzy/internal"
)

// AuthConfig configures the RequireAuth middleware.
type AuthConfig struct {
	// Message is the 401 response message.
	Message string

	// Check overrides the default authentication check.
	Check func(c internal.Context) bool
}

// AuthOption configures AuthConfig.
type AuthOption func(*AuthConfig)

// WithAuthMessage sets the 401 response message.
func WithAuthMessage(msg string) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.Message = msg
	}
}

// WithAuthCheck sets a custom authentication predicate (e.g., role checks
// on top of token validity).
func WithAuthCheck(fn func(c internal.Context) bool) AuthOption {
	return func(cfg *AuthConfig) {
		cfg.Check = fn
	}
}

// RequireAuth returns middleware that rejects unauthenticated requests with
// a 401. Token verification itself happens during context construction;
// this guard only checks the resulting state, so an invalid token and a
// missing one are rejected identically.
func RequireAuth(opts ...AuthOption) internal.Middleware {
	cfg := &AuthConfig{
		Message: "authentication required",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ok := c.Check()
			if cfg.Check != nil {
				ok = cfg.Check(c)
			}
			if !ok {
				return internal.ErrUnauthorized(cfg.Message)
			}
			return next(c)
		}
	}
}
