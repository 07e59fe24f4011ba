package redis

import (
	"context"
	"io"
)

// Shutdown returns a function that closes the Redis client, shaped for
// jazzy.ShutdownHook.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Close()
	}
}
