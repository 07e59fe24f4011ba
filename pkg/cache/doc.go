// Package cache provides generic key-value caching with TTL support, an
// in-memory backend and a Redis backend, plus fixed-window counters used by
// the rate limiting middleware.
//
//	users := cache.NewMemory[User](cache.WithDefaultTTL(5 * time.Minute))
//	defer users.Close()
//
//	u, err := cache.GetOrSet(ctx, users, "user:42", func(ctx context.Context) (User, time.Duration, error) {
//	    return loadUser(ctx, 42)
//	})
//
// GetOrSet deduplicates concurrent misses with singleflight, so a cold key
// hit by many requests at once computes only one load.
package cache
