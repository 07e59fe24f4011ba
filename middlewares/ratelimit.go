package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jazzy-go/jazzy/internal"
	"github.com/jazzy-go/jazzy/pkg/cache"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limit is the number of requests allowed per window.
	Limit int64

	// Window is the fixed window duration.
	Window time.Duration

	// Counter tracks request counts. Use cache.NewMemoryCounter for a
	// single instance or cache.NewRedisCounter to share the budget across
	// instances.
	Counter cache.Counter

	// KeyFunc derives the client key. Defaults to the remote IP.
	KeyFunc func(c internal.Context) string
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimitCounter sets the counter backend.
func WithRateLimitCounter(counter cache.Counter) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.Counter = counter
	}
}

// WithRateLimitKeyFunc sets a custom client key function (e.g., by user ID
// instead of IP).
func WithRateLimitKeyFunc(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.KeyFunc = fn
	}
}

// RateLimit returns middleware enforcing a fixed-window request limit per
// client. Exceeding the limit yields a RateLimitError with a 429 and a
// Retry-After header. Counter failures fail open: an unreachable backend
// never takes the API down with it.
func RateLimit(limit int64, window time.Duration, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{
		Limit:   limit,
		Window:  window,
		KeyFunc: remoteIP,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Counter == nil {
		cfg.Counter = cache.NewMemoryCounter()
	}

	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key := cfg.KeyFunc(c)
			if key == "" {
				return next(c)
			}

			n, err := cfg.Counter.Increment(c, key, cfg.Window)
			if err != nil {
				c.LogWarn("rate limit counter unavailable", "error", err)
				return next(c)
			}

			if n > cfg.Limit {
				c.SetHeader("Retry-After", retryAfter)
				return internal.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded",
					internal.WithError(&RateLimitError{RetryAfter: cfg.Window}))
			}
			return next(c)
		}
	}
}

// remoteIP extracts the client IP, preferring X-Forwarded-For when present.
func remoteIP(c internal.Context) string {
	if fwd := c.Header("X-Forwarded-For"); fwd != "" {
		for i := range len(fwd) {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
	if err != nil {
		return c.Request().RemoteAddr
	}
	return host
}
