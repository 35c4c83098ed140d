package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/youngkeol/notion-blog/internal/metrics"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is an expiring in-memory map.
// An entry is valid while now - storedAt < ttl; stale entries are dropped lazily on access.
type TTLCache[K comparable, V any] struct {
	name     string
	ttl      time.Duration
	now      func() time.Time
	recorder metrics.Recorder

	mu      sync.RWMutex
	entries map[K]entry[V]
	group   singleflight.Group
}

// Option configures a TTLCache
type Option func(*options)

type options struct {
	now      func() time.Time
	recorder metrics.Recorder
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRecorder reports hits and misses under the cache name
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// New creates a cache. name labels metrics and logs.
func New[K comparable, V any](name string, ttl time.Duration, opts ...Option) *TTLCache[K, V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTLCache[K, V]{
		name:     name,
		ttl:      ttl,
		now:      o.now,
		recorder: metrics.OrNoop(o.recorder),
		entries:  make(map[K]entry[V]),
	}
}

// Name returns the cache's label
func (c *TTLCache[K, V]) Name() string { return c.name }

// Get returns the value for key if present and fresh.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lookup(key)
	c.recorder.IncCacheResult(c.name, ok)
	return v, ok
}

func (c *TTLCache[K, V]) lookup(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Another writer may have refreshed it meanwhile
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value for key, replacing any previous entry.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Delete removes key
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len counts stored entries, stale ones included.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrLoad returns the cached value or calls load once per key across concurrent callers.
// Successful results are stored; errors are returned and never cached.
func (c *TTLCache[K, V]) GetOrLoad(ctx context.Context, key K, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.group.DoChan(fmt.Sprint(key), func() (any, error) {
		// A concurrent loader may have finished between Get and DoChan
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}
