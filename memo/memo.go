// Package memo provides a memoized evaluator for pure recursive functions,
// with Fibonacci as the built-in computation.
//
// The cache is owned by the Evaluator, never by an individual call, so its
// lifetime matches the evaluator's rather than leaking per invocation. The
// default cache is unbounded; a bounded LRU can be supplied instead, in which
// case evicted keys are transparently recomputed on the next request.
package memo

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/recgo/cache"
)

// MaxFib is the largest n for which Fib(n) fits in a uint64.
const MaxFib = 93

// NegativeInputError indicates a negative argument to Fib.
type NegativeInputError struct {
	N int
}

func (e *NegativeInputError) Error() string {
	return fmt.Sprintf("fib: negative input: %d", e.N)
}

// OverflowError indicates an argument whose result exceeds uint64 range.
type OverflowError struct {
	N int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("fib: input %d exceeds maximum %d (result overflows uint64)", e.N, MaxFib)
}

// Evaluator computes Fibonacci numbers with memoization.
//
// Safe for concurrent use. At most one computation per requested key is in
// flight at a time; concurrent requests for the same key wait for that
// flight. Flights for different keys may duplicate interior work, which is
// harmless because the function is pure (last write wins with equal values).
type Evaluator struct {
	cache cache.Cache[int, uint64]
	group singleflight.Group

	// computed counts cache-miss evaluations, used to verify that repeated
	// calls are served from the cache.
	computed atomic.Int64
}

// NewEvaluator creates an Evaluator backed by c. If c is nil, an unbounded
// map cache is used.
func NewEvaluator(c cache.Cache[int, uint64]) *Evaluator {
	if c == nil {
		c = cache.NewMap[int, uint64]()
	}
	return &Evaluator{cache: c}
}

// Fib returns the n-th Fibonacci number (Fib(0)=0, Fib(1)=1).
//
// A previously computed value is returned in O(1) without re-deriving the
// recursion; a new value costs O(n) amortized. Negative n and n > MaxFib are
// rejected.
func (e *Evaluator) Fib(n int) (uint64, error) {
	if n < 0 {
		return 0, &NegativeInputError{N: n}
	}
	if n > MaxFib {
		return 0, &OverflowError{N: n}
	}

	if v, ok := e.cache.Get(n); ok {
		return v, nil
	}

	v, _, _ := e.group.Do(strconv.Itoa(n), func() (any, error) {
		return e.eval(n), nil
	})
	return v.(uint64), nil
}

// eval computes fib(n) recursively, consulting the cache at every level and
// populating it on the way back up.
func (e *Evaluator) eval(n int) uint64 {
	if v, ok := e.cache.Get(n); ok {
		return v
	}

	e.computed.Add(1)

	var v uint64
	if n <= 1 {
		v = uint64(n)
	} else {
		v = e.eval(n-1) + e.eval(n-2)
	}

	e.cache.Set(n, v)
	return v
}

// Computed returns the number of cache-miss evaluations performed so far.
func (e *Evaluator) Computed() int64 {
	return e.computed.Load()
}

// CacheStats returns the cache hit and miss counters.
func (e *Evaluator) CacheStats() (hits, misses int64) {
	return e.cache.Stats()
}

// Reset drops all cached results.
func (e *Evaluator) Reset() {
	e.cache.Purge()
}
