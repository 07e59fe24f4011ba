package middlewares

import (
	"context"
	"time"

	"github.com/jazzy-go/jazzy/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// timeoutContextKey stores the deadline-bound context.
type timeoutContextKey struct{}

// Timeout returns middleware that enforces a request deadline. A handler
// exceeding it yields a TimeoutError for the error boundary to convert.
//
// The handler goroutine runs against a detached response and keeps running
// after the deadline; its late writes stay in the detached buffer and never
// reach the wire. Long-running operations should watch
// GetTimeoutContext(c).Done() to stop early.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c, timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)
			hc, hr := internal.DetachResponse(c)

			done := make(chan error, 1)
			go func() {
				done <- next(hc)
			}()

			select {
			case err := <-done:
				if hr != nil {
					c.Response().CopyFrom(hr)
				}
				return err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					c.LogWarn("request timeout", "timeout", timeout.String())
					return &TimeoutError{Duration: timeout}
				}
				return ctx.Err()
			}
		}
	}
}

// GetTimeoutContext retrieves the deadline-bound context if available,
// letting handlers observe cancellation via ctx.Done().
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c
}
