package memo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/cache"
)

func fibSlow(n int) uint64 {
	if n <= 1 {
		return uint64(n)
	}
	a, b := uint64(0), uint64(1)
	for j := 0; j < n-1; j++ {
		a, b = b, a+b
	}
	return b
}

func TestFib(t *testing.T) {
	e := NewEvaluator(nil)

	t.Run("base cases", func(t *testing.T) {
		v, err := e.Fib(0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), v)

		v, err = e.Fib(1)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), v)
	})

	t.Run("worked example", func(t *testing.T) {
		v, err := e.Fib(10)
		require.NoError(t, err)
		assert.Equal(t, uint64(55), v)
	})

	t.Run("matches the defining recursion", func(t *testing.T) {
		for n := 0; n < 40; n++ {
			v, err := e.Fib(n)
			require.NoError(t, err)
			assert.Equal(t, fibSlow(n), v, "fib(%d)", n)
		}
	})

	t.Run("largest representable value", func(t *testing.T) {
		v, err := e.Fib(MaxFib)
		require.NoError(t, err)
		assert.Equal(t, fibSlow(MaxFib), v)
	})
}

func TestFib_InvalidInput(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Fib(-1)
	var negErr *NegativeInputError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, -1, negErr.N)

	_, err = e.Fib(MaxFib + 1)
	var ovErr *OverflowError
	require.ErrorAs(t, err, &ovErr)
	assert.Equal(t, MaxFib+1, ovErr.N)
}

func TestFib_CachedCallComputesNothing(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Fib(30)
	require.NoError(t, err)

	computed := e.Computed()
	assert.Equal(t, int64(31), computed, "fib(30) derives exactly fib(0)..fib(30)")

	// A repeated call is a pure cache lookup.
	v, err := e.Fib(30)
	require.NoError(t, err)
	assert.Equal(t, uint64(832040), v)
	assert.Equal(t, computed, e.Computed(), "second call must not re-derive anything")

	// A larger argument only derives the missing values.
	_, err = e.Fib(35)
	require.NoError(t, err)
	assert.Equal(t, computed+5, e.Computed())
}

func TestFib_FailedCallLeavesCacheIntact(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Fib(20)
	require.NoError(t, err)
	computed := e.Computed()

	_, err = e.Fib(-5)
	require.Error(t, err)

	v, err := e.Fib(20)
	require.NoError(t, err)
	assert.Equal(t, uint64(6765), v)
	assert.Equal(t, computed, e.Computed())
}

func TestFib_BoundedCacheEvictionRecomputes(t *testing.T) {
	const capacity = 4
	e := NewEvaluator(cache.NewLRU[int, uint64](capacity, nil, 0))

	// Filling the cache beyond capacity evicts the least-recently-used
	// keys; a later request for an evicted key recomputes instead of
	// returning a cached value, and still yields the correct result.
	for n := 0; n < capacity+6; n++ {
		v, err := e.Fib(n)
		require.NoError(t, err)
		assert.Equal(t, fibSlow(n), v)
	}

	before := e.Computed()
	v, err := e.Fib(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
	assert.Greater(t, e.Computed(), before, "evicted key must be recomputed")
}

func TestFib_Reset(t *testing.T) {
	e := NewEvaluator(nil)

	_, err := e.Fib(15)
	require.NoError(t, err)
	before := e.Computed()

	e.Reset()

	v, err := e.Fib(15)
	require.NoError(t, err)
	assert.Equal(t, uint64(610), v)
	assert.Greater(t, e.Computed(), before)
}

func TestFib_Concurrent(t *testing.T) {
	e := NewEvaluator(nil)

	var wg sync.WaitGroup
	for g := 0; g < 32; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := g % 60
			v, err := e.Fib(n)
			assert.NoError(t, err)
			assert.Equal(t, fibSlow(n), v)
		}()
	}
	wg.Wait()
}
