// Package index provides a lazily built secondary index over schemaless
// records, answering field-equality queries in amortized constant time.
//
// The index for a field is built on the first query naming that field, by a
// single linear scan of the record collection supplied with that query. Later
// queries for the same field reuse the built index and never rescan — even if
// they pass a different record collection. Callers that mutate or replace the
// record set after a field has been indexed will silently read stale results;
// call Reset to drop all built indexes. This reuse is a documented tradeoff,
// not a defect.
package index

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/recgo/record"
)

// Index answers equality queries over record fields.
//
// Safe for concurrent use: readers of an already-built field proceed under a
// shared lock, and the first build per field runs at most once, appearing
// atomic to readers (a field is either absent or fully built).
type Index struct {
	mu     sync.RWMutex
	fields map[string]*fieldIndex

	// group serializes the initial build per field so concurrent first
	// queries for the same field cannot produce divergent partial indexes,
	// while builds for different fields proceed in parallel.
	group singleflight.Group
}

// fieldIndex partitions one field's records by value. positions index into
// the records snapshot captured at build time; roaring bitmaps iterate in
// ascending order, which restores the original relative record order.
type fieldIndex struct {
	records []record.Record
	buckets map[string]*roaring.Bitmap
}

// New creates an empty Index. No per-field structures exist until the first
// query for that field.
func New() *Index {
	return &Index{fields: make(map[string]*fieldIndex)}
}

// Search returns all records whose field equals value, in their original
// relative order within records.
//
// On the first call for field, the index is built from records in one pass;
// the records slice is retained as the snapshot that index answers from.
// Subsequent calls with the same field reuse the built index regardless of
// the records argument. Unknown fields and unmatched values return an empty
// (nil) result; Search never fails.
func (ix *Index) Search(records []record.Record, field string, value record.Value) []record.Record {
	ix.mu.RLock()
	fi, ok := ix.fields[field]
	ix.mu.RUnlock()

	if !ok {
		fi = ix.build(records, field)
	}

	bm, ok := fi.buckets[value.Key()]
	if !ok {
		return nil
	}

	out := make([]record.Record, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, fi.records[it.Next()])
	}
	return out
}

// Built reports whether an index has been built for field.
func (ix *Index) Built(field string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.fields[field]
	return ok
}

// Fields returns the number of fields with a built index.
func (ix *Index) Fields() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.fields)
}

// Reset drops all built indexes. The next query per field rebuilds from the
// records supplied with that query.
func (ix *Index) Reset() {
	ix.mu.Lock()
	ix.fields = make(map[string]*fieldIndex)
	ix.mu.Unlock()
}

func (ix *Index) build(records []record.Record, field string) *fieldIndex {
	v, _, _ := ix.group.Do(field, func() (any, error) {
		// Recheck: a concurrent flight may have published the field between
		// the caller's read and this flight starting.
		ix.mu.RLock()
		fi, ok := ix.fields[field]
		ix.mu.RUnlock()
		if ok {
			return fi, nil
		}

		fi = &fieldIndex{
			records: records,
			buckets: make(map[string]*roaring.Bitmap),
		}
		for pos, r := range records {
			val, ok := r.Get(field)
			if !ok {
				continue
			}
			key := val.Key()
			bm, ok := fi.buckets[key]
			if !ok {
				bm = roaring.New()
				fi.buckets[key] = bm
			}
			bm.Add(uint32(pos))
		}

		ix.mu.Lock()
		ix.fields[field] = fi
		ix.mu.Unlock()
		return fi, nil
	})
	return v.(*fieldIndex)
}
