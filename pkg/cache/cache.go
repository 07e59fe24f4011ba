package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// TTL semantics for Set:
//   - positive: item expires after the duration
//   - zero: use the backend's configured default TTL
//   - negative: item never expires
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// Counter is a fixed-window counter, the primitive behind rate limiting.
// The first increment of a window starts its TTL; the count resets when the
// window expires.
type Counter interface {
	// Increment adds one to the counter for key and returns the new count.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Marshaler serializes cache values for byte-oriented backends like Redis.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Flight groups are scoped per cache instance so identical keys in
// unrelated caches (possibly with different value types) never join the
// same flight. Cache implementations are pointers, so they work as map
// keys; entries live as long as the cache itself.
var sfGroups sync.Map

func flightGroup[V any](c Cache[V]) *singleflight.Group {
	if g, ok := sfGroups.Load(c); ok {
		return g.(*singleflight.Group)
	}
	g, _ := sfGroups.LoadOrStore(c, new(singleflight.Group))
	return g.(*singleflight.Group)
}

type getOrSetResult[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet retrieves a value, calling fn to compute it on a miss. Concurrent
// misses on the same key are deduplicated with singleflight, so fn runs
// once. The computed value is cached best-effort with the TTL fn returns;
// on error nothing is cached.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := flightGroup(c).Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return getOrSetResult[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(getOrSetResult[V])
	_ = c.Set(ctx, key, r.val, r.ttl)
	return r.val, nil
}
