// Package cache provides the in-memory caches backing recgo's memoization
// and stream enrichment: an unbounded map cache and a bounded LRU cache.
//
// Both implementations are safe for concurrent use. Eviction and lookup
// serialize on the same lock, so a lookup can never observe a half-evicted
// entry.
package cache

// Cache is a generic key-value cache.
type Cache[K comparable, V any] interface {
	// Get returns the cached value. ok=false if missing.
	Get(key K) (v V, ok bool)
	// Set stores a value. Bounded implementations may evict to make room.
	Set(key K, v V)
	// Remove drops an entry if present.
	Remove(key K)
	// Len returns the number of cached entries.
	Len() int
	// Purge drops all entries.
	Purge()
	// Stats returns the hit and miss counters.
	Stats() (hits, misses int64)
}
