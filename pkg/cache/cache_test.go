package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzy-go/jazzy/pkg/cache"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("set and get round trip", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expired key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrNotFound)

		ok, err := c.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, -1))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("delete removes key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))

		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set after close fails", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Close())

		err := c.Set(context.Background(), "k", 1, time.Minute)
		assert.ErrorIs(t, err, cache.ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("miss computes and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		calls := 0
		fn := func(ctx context.Context) (string, time.Duration, error) {
			calls++
			return "computed", time.Minute, nil
		}

		got, err := cache.GetOrSet(ctx, c, "key", fn)
		require.NoError(t, err)
		assert.Equal(t, "computed", got)

		got, err = cache.GetOrSet(ctx, c, "key", fn)
		require.NoError(t, err)
		assert.Equal(t, "computed", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		boom := errors.New("load failed")
		_, err := cache.GetOrSet(ctx, c, "err-key", func(ctx context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		assert.ErrorIs(t, err, boom)

		ok, err := c.Has(ctx, "err-key")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent misses compute once", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64
		fn := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return "shared", time.Minute, nil
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := cache.GetOrSet(ctx, c, "shared-key", fn)
				assert.NoError(t, err)
				assert.Equal(t, "shared", got)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("caches do not share flights", func(t *testing.T) {
		t.Parallel()

		texts := cache.NewMemory[string]()
		defer texts.Close()
		numbers := cache.NewMemory[int]()
		defer numbers.Close()

		ctx := context.Background()
		started := make(chan struct{})
		release := make(chan struct{})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.GetOrSet(ctx, texts, "same-key", func(ctx context.Context) (string, time.Duration, error) {
				close(started)
				<-release
				return "text", time.Minute, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "text", got)
		}()
		<-started

		// With the first cache's flight still in progress, the same key on a
		// different cache must compute independently.
		n, err := cache.GetOrSet(ctx, numbers, "same-key", func(ctx context.Context) (int, time.Duration, error) {
			return 42, time.Minute, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, n)

		close(release)
		wg.Wait()
	})
}

func TestMemoryCounter(t *testing.T) {
	t.Parallel()

	t.Run("counts within a window", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemoryCounter()
		ctx := context.Background()

		for want := int64(1); want <= 3; want++ {
			n, err := c.Increment(ctx, "client", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, n)
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemoryCounter()
		ctx := context.Background()

		_, err := c.Increment(ctx, "client", time.Nanosecond)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		n, err := c.Increment(ctx, "client", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemoryCounter()
		ctx := context.Background()

		_, err := c.Increment(ctx, "a", time.Minute)
		require.NoError(t, err)
		n, err := c.Increment(ctx, "b", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
