package cache

import "time"

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL sets the expiration applied when Set is called with a zero
// TTL. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the janitor removes expired entries.
// Zero disables the janitor; expired entries are then only removed lazily
// on Get. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}
