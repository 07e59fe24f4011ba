package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize      int
	minIdleConns  int
	maxIdleTime   time.Duration
	maxLifetime   time.Duration
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
}

func defaultConnectOptions() *options {
	return &options{
		poolSize:      10,
		minIdleConns:  5,
		maxIdleTime:   10 * time.Minute,
		maxLifetime:   30 * time.Minute,
		retryAttempts: 3,
		retryInterval: 5 * time.Second,
		dialTimeout:   5 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
// Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// Default: 5.
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		o.minIdleConns = n
	}
}

// WithRetry configures connection retry behavior.
// Default: 3 attempts with a 5 second base interval and linear backoff.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets the dial, read and write timeouts.
// Defaults: 5s dial, 3s read, 3s write.
func WithTimeouts(dial, read, write time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = dial
		o.readTimeout = read
		o.writeTimeout = write
	}
}

// Open creates a Redis client from a redis:// or rediss:// URL, verifying
// connectivity with retries before returning.
//
// Example:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//	    redis.WithPoolSize(20),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultConnectOptions()
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	redisOpts.PoolSize = o.poolSize
	redisOpts.MinIdleConns = o.minIdleConns
	redisOpts.ConnMaxIdleTime = o.maxIdleTime
	redisOpts.ConnMaxLifetime = o.maxLifetime
	redisOpts.DialTimeout = o.dialTimeout
	redisOpts.ReadTimeout = o.readTimeout
	redisOpts.WriteTimeout = o.writeTimeout

	return connect(ctx, redisOpts, o.retryAttempts, o.retryInterval)
}

// MustOpen creates a Redis client or exits the process on failure.
func MustOpen(ctx context.Context, url string, opts ...Option) redis.UniversalClient {
	client, err := Open(ctx, url, opts...)
	if err != nil {
		slog.Error("failed to open redis connection", "error", err)
		os.Exit(1)
	}
	return client
}

func connect(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		if waitErr := wait(ctx, time.Duration(i+1)*interval); waitErr != nil {
			return nil, errors.Join(ErrConnectionFailed, waitErr)
		}
	}

	return nil, ErrConnectionFailed
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
