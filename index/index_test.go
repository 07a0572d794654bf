package index

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/record"
)

func rec(kv ...any) record.Record {
	r := make(record.Record, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		v, err := record.FromAny(kv[i+1])
		if err != nil {
			panic(err)
		}
		r[kv[i].(string)] = v
	}
	return r
}

func TestSearch(t *testing.T) {
	records := []record.Record{
		rec("city", "berlin", "tier", 1),
		rec("city", "paris", "tier", 2),
		rec("city", "berlin", "tier", 2),
		rec("tier", 1), // no city field
	}

	t.Run("equality match preserves original order", func(t *testing.T) {
		ix := New()
		got := ix.Search(records, "city", record.String("berlin"))
		require.Len(t, got, 2)
		assert.Equal(t, records[0], got[0])
		assert.Equal(t, records[2], got[1])
	})

	t.Run("records lacking the field are excluded", func(t *testing.T) {
		ix := New()
		got := ix.Search(records, "tier", record.Int(1))
		require.Len(t, got, 2)
		assert.Equal(t, records[0], got[0])
		assert.Equal(t, records[3], got[1])
	})

	t.Run("unknown value yields empty result", func(t *testing.T) {
		ix := New()
		assert.Empty(t, ix.Search(records, "city", record.String("tokyo")))
	})

	t.Run("unknown field yields empty result", func(t *testing.T) {
		ix := New()
		assert.Empty(t, ix.Search(records, "country", record.String("fr")))
	})

	t.Run("empty record set", func(t *testing.T) {
		ix := New()
		assert.Empty(t, ix.Search(nil, "city", record.String("berlin")))
		assert.True(t, ix.Built("city"))
	})
}

func TestSearch_Completeness(t *testing.T) {
	var records []record.Record
	for i := 0; i < 200; i++ {
		records = append(records, rec("bucket", i%7, "id", i))
	}

	ix := New()
	for _, r := range records {
		v, _ := r.Get("bucket")
		got := ix.Search(records, "bucket", v)
		assert.Contains(t, got, r)
	}
	assert.Equal(t, 1, ix.Fields())
}

// The index for a field is built from the records supplied with the first
// query and deliberately reused afterwards: a later call with a different
// record collection still answers from the original snapshot.
func TestSearch_StaleIndexReuse(t *testing.T) {
	r1 := []record.Record{rec("k", "a"), rec("k", "b")}
	r2 := []record.Record{rec("k", "c")}

	ix := New()
	ix.Search(r1, "k", record.String("a"))

	got := ix.Search(r2, "k", record.String("b"))
	require.Len(t, got, 1)
	assert.Equal(t, r1[1], got[0])

	assert.Empty(t, ix.Search(r2, "k", record.String("c")))
}

func TestReset(t *testing.T) {
	r1 := []record.Record{rec("k", "a")}
	r2 := []record.Record{rec("k", "c")}

	ix := New()
	ix.Search(r1, "k", record.String("a"))
	require.True(t, ix.Built("k"))

	ix.Reset()
	assert.False(t, ix.Built("k"))

	// Next query rebuilds from the newly supplied records.
	got := ix.Search(r2, "k", record.String("c"))
	require.Len(t, got, 1)
	assert.Equal(t, r2[0], got[0])
}

func TestSearch_ConcurrentFirstQueries(t *testing.T) {
	var records []record.Record
	for i := 0; i < 1000; i++ {
		records = append(records, rec("mod", i%10, "name", "r"+strconv.Itoa(i)))
	}

	ix := New()

	var wg sync.WaitGroup
	results := make([][]record.Record, 50)
	for g := 0; g < 50; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[g] = ix.Search(records, "mod", record.Int(int64(g%10)))
		}()
	}
	wg.Wait()

	// The build appears atomic: every reader sees the complete partition.
	for g, got := range results {
		assert.Len(t, got, 100, "goroutine %d", g)
	}
	assert.Equal(t, 1, ix.Fields())
}

func TestSearch_ConcurrentDistinctFields(t *testing.T) {
	var records []record.Record
	for i := 0; i < 100; i++ {
		records = append(records, rec("a", i%2, "b", i%5))
	}

	ix := New()

	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, ix.Search(records, "a", record.Int(0)), 50)
			assert.Len(t, ix.Search(records, "b", record.Int(3)), 20)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ix.Fields())
}
