package cache

import (
	"sync"
	"sync/atomic"
)

// Map is an unbounded cache backed by a plain map. Reads of cached keys take
// only a read lock.
type Map[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMap creates a new unbounded cache.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{items: make(map[K]V)}
}

// Get returns a cached value. ok=false if missing.
func (c *Map[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value.
func (c *Map[K, V]) Set(key K, v V) {
	c.mu.Lock()
	c.items[key] = v
	c.mu.Unlock()
}

// Remove drops an entry if present.
func (c *Map[K, V]) Remove(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Map[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops all entries.
func (c *Map[K, V]) Purge() {
	c.mu.Lock()
	c.items = make(map[K]V)
	c.mu.Unlock()
}

// Stats returns the hit and miss counters.
func (c *Map[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
