package middlewares

import (
	"log/slog"
	"time"

	"github.com/jazzy-go/jazzy/internal"
)

// Logging returns middleware that writes one access log entry per request
// after the handler chain completes. Because the response is buffered, the
// final status and body size are available even though nothing has been
// written to the wire yet.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", c.Response().Status()),
				slog.Int64("size", c.Response().Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				c.LogError("request", attrs...)
				return err
			}
			c.LogInfo("request", attrs...)
			return nil
		}
	}
}
