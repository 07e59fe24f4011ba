package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jazzy-go/jazzy/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig provides sensible defaults for CORS.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins is a static list of allowed origins.
	// Use "*" to allow all origins (not recommended with credentials).
	AllowOrigins []string

	// AllowOriginFunc is a dynamic origin validator. When set, it completely
	// overrides AllowOrigins.
	AllowOriginFunc func(origin string) bool

	// AllowMethods specifies the allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders specifies the allowed request headers.
	AllowHeaders []string

	// ExposeHeaders specifies headers exposed to the client.
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed. When true,
	// Access-Control-Allow-Origin cannot be "*" — the actual origin is echoed.
	AllowCredentials bool

	// MaxAge specifies how long preflight responses can be cached.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc sets a dynamic origin validator.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the headers exposed to the client.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials enables credentials support.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// It answers preflight (OPTIONS) requests and adds CORS headers to all
// responses from allowed origins.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &CORSConfig{
		AllowOrigins: DefaultCORSConfig.AllowOrigins,
		AllowMethods: DefaultCORSConfig.AllowMethods,
		AllowHeaders: DefaultCORSConfig.AllowHeaders,
		MaxAge:       DefaultCORSConfig.MaxAge,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	allowMethodsStr := strings.Join(cfg.AllowMethods, ", ")
	allowHeadersStr := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeadersStr := strings.Join(cfg.ExposeHeaders, ", ")
	maxAgeStr := strconv.Itoa(int(cfg.MaxAge.Seconds()))
	hasWildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" {
				return next(c)
			}

			if !isOriginAllowed(origin, cfg, hasWildcard) {
				// Origin not allowed: no CORS headers, the browser blocks.
				return next(c)
			}

			headers := c.Response().Header()
			headers.Add("Vary", "Origin")

			if cfg.AllowCredentials || !hasWildcard {
				headers.Set("Access-Control-Allow-Origin", origin)
			} else {
				headers.Set("Access-Control-Allow-Origin", "*")
			}

			if cfg.AllowCredentials {
				headers.Set("Access-Control-Allow-Credentials", "true")
			}

			if exposeHeadersStr != "" {
				headers.Set("Access-Control-Expose-Headers", exposeHeadersStr)
			}

			if c.Method() == http.MethodOptions {
				headers.Add("Vary", "Access-Control-Request-Method")
				headers.Add("Vary", "Access-Control-Request-Headers")
				headers.Set("Access-Control-Allow-Methods", allowMethodsStr)
				headers.Set("Access-Control-Allow-Headers", allowHeadersStr)
				if cfg.MaxAge > 0 {
					headers.Set("Access-Control-Max-Age", maxAgeStr)
				}
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

func isOriginAllowed(origin string, cfg *CORSConfig, hasWildcard bool) bool {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	if hasWildcard {
		return true
	}
	return slices.Contains(cfg.AllowOrigins, origin)
}
