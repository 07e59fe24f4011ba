package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by Redis. Values are serialized with the
// configured Marshaler (JSON by default).
type Redis[V any] struct {
	client    redis.UniversalClient
	opts      *redisOptions
	marshaler Marshaler[V]
}

// NewRedis creates a Redis-backed cache. The client should come from
// pkg/redis.Open. Pass a nil Marshaler for JSON serialization.
//
// Example:
//
//	client := redisconn.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis[User](client, nil,
//	    cache.WithPrefix("users"),
//	    cache.WithRedisDefaultTTL(30 * time.Minute),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Redis[V]{
		client:    client,
		opts:      o,
		marshaler: m,
	}
}

// Get retrieves a value by key. Returns ErrNotFound if the key is absent.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

// Set stores a value with the given TTL. A negative TTL maps to no
// expiration on the Redis side.
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	redisTTL := max(ttl, 0)

	return r.client.Set(ctx, r.prefixedKey(key), data, redisTTL).Err()
}

// Delete removes a key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefixedKey(key)).Err()
}

// Has checks whether a key exists.
func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefixedKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close is a no-op; the Redis client lifecycle belongs to the caller.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) prefixedKey(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)

// RedisCounter is a fixed-window counter backed by Redis, suitable for rate
// limiting across multiple application instances.
type RedisCounter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCounter creates a Redis-backed counter. Keys are stored under
// "{prefix}:{key}" when a prefix is given.
func NewRedisCounter(client redis.UniversalClient, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

// Increment adds one to the counter for key. The window TTL is set only
// when the key is created, so the window is anchored at the first hit.
func (c *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if c.prefix != "" {
		key = c.prefix + ":" + key
	}

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

var _ Counter = (*RedisCounter)(nil)
