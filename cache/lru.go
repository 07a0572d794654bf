package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/recgo/resource"
)

// LRU is a bounded cache that evicts the least-recently-used entry once the
// capacity is reached. Both Get and Set refresh an entry's recency.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	entryCost int64
	items     map[K]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates a new LRU cache holding at most capacity entries.
// If rc is non-nil, entryCost bytes are charged against it per entry; a Set
// that the controller rejects is dropped rather than evicting further.
func NewLRU[K comparable, V any](capacity int, rc *resource.Controller, entryCost int64) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity:  capacity,
		entryCost: entryCost,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns a cached value, marking the entry as most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores a value, evicting the least-recently-used entry if the cache
// is full.
func (c *LRU[K, V]) Set(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry[K, V]).value = v
		return
	}

	for c.evictList.Len() >= c.capacity {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}

	if !c.rc.TryAcquireMemory(c.entryCost) {
		return
	}

	ent := c.evictList.PushFront(&entry[K, V]{key: key, value: v})
	c.items[key] = ent
}

// Remove drops an entry if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Purge drops all entries.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rc.ReleaseMemory(int64(c.evictList.Len()) * c.entryCost)
	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *LRU[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	delete(c.items, ent.Value.(*entry[K, V]).key)
	c.rc.ReleaseMemory(c.entryCost)
}
