// Package cache is an in-process read-through cache with per-entry
// expiry and explicit eviction.
//
// Expired entries are dropped lazily on read and periodically by Sweep.
// Concurrent misses on one key may each run the loader. A load that
// overlaps a Remove or Clear returns its value without caching it.
package cache

import (
	"context"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

type Cache struct {
	mu         sync.RWMutex
	items      map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
	// generation is bumped by every Remove and Clear.
	generation uint64
}

// New creates a cache. A non-positive ttl means DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		items:      make(map[string]entry),
		defaultTTL: ttl,
		now:        time.Now,
	}
}

func (c *Cache) TTL() time.Duration {
	return c.defaultTTL
}

// Get returns the live value for key.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		cacheMisses.Inc()
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.items[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.items, key)
			cacheEvictions.WithLabelValues("expired").Inc()
			cacheEntries.Set(float64(len(c.items)))
		}
		c.mu.Unlock()
		cacheMisses.Inc()
		return nil, false
	}

	cacheHits.Inc()
	return e.value, true
}

// Set stores value under key. A non-positive ttl means the cache default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.store(key, value, ttl)
	c.mu.Unlock()
}

// setIfCurrent stores value only if no eviction happened since gen was read.
func (c *Cache) setIfCurrent(key string, value any, ttl time.Duration, gen uint64) bool {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.store(key, value, ttl)
	return true
}

func (c *Cache) store(key string, value any, ttl time.Duration) {
	c.items[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	cacheEntries.Set(float64(len(c.items)))
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Remove evicts keys. Missing keys are ignored.
func (c *Cache) Remove(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for _, key := range keys {
		if _, ok := c.items[key]; ok {
			delete(c.items, key)
			cacheEvictions.WithLabelValues("explicit").Inc()
		}
	}
	cacheEntries.Set(float64(len(c.items)))
}

// Clear evicts every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	cacheEvictions.WithLabelValues("cleared").Add(float64(len(c.items)))
	c.items = make(map[string]entry)
	cacheEntries.Set(0)
}

// Sweep drops expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	cacheEvictions.WithLabelValues("expired").Add(float64(removed))
	cacheEntries.Set(float64(len(c.items)))
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// GetOrLoad returns the cached T for key, or runs load and caches its
// result. Loader errors are returned and nothing is cached. A result loaded
// while an eviction ran is returned but not cached, since it may predate the
// write that caused the eviction.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	gen := c.currentGeneration()
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.setIfCurrent(key, value, ttl, gen)
	return value, nil
}
