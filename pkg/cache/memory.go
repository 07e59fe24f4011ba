package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time // zero value = never expires
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory cache with TTL-based expiration. A background
// janitor removes expired entries; Close stops it.
type Memory[V any] struct {
	items  map[string]memoryEntry[V]
	opts   *memoryOptions
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithCleanupInterval(30 * time.Second),
//	)
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items: make(map[string]memoryEntry[V]),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist or has expired. Expired
// entries are removed lazily; the janitor handles the rest.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Set stores a value with the given TTL.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.items[key] = memoryEntry[V]{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Has checks whether a key exists and has not expired.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	return ok && !e.expired(time.Now()), nil
}

// Close stops the janitor and marks the cache closed. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory[V]) deleteExpired() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.items {
		if e.expired(now) {
			delete(m.items, key)
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)

// MemoryCounter is an in-memory fixed-window counter.
type MemoryCounter struct {
	windows map[string]*counterWindow
	mu      sync.Mutex
}

type counterWindow struct {
	count    int64
	resetsAt time.Time
}

// NewMemoryCounter creates a new in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*counterWindow),
	}
}

// Increment adds one to the counter for key, starting a new window when the
// previous one has expired.
func (c *MemoryCounter) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || now.After(w.resetsAt) {
		w = &counterWindow{resetsAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}

var _ Counter = (*MemoryCounter)(nil)
