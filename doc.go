// Package recgo provides an embedded in-memory record-processing engine.
//
// Recgo bundles five independent capabilities sharing one design principle:
// pay a one-time preprocessing cost to make repeated access cheap.
//
//   - Deduplication: values occurring more than once, found in a single pass
//   - Statistics: mean, population variance and standard deviation without
//     redundant summation
//   - Filter-transform: square values above a threshold, sorted ascending
//   - Indexed record search: lazy per-field secondary indexes answering
//     equality queries in amortized constant time
//   - Memoized evaluation: cached pure recursive computation (Fibonacci)
//
// # Quick Start
//
//	e := recgo.New()
//
//	records := []record.Record{
//	    {"city": record.String("berlin"), "pop": record.Int(3)},
//	    {"city": record.String("paris"), "pop": record.Int(2)},
//	}
//	matches := e.Search(records, "city", record.String("paris"))
//
//	stats, err := recgo.Statistics([]float64{2, 4, 4, 4, 5, 5, 7, 9})
//	dups := recgo.Deduplicate([]int{1, 2, 2, 3, 3, 3})
//	v, err := e.Fib(30)
//
// The stateless operations (Deduplicate, Statistics, FilterTransform) are
// plain functions, safe to call concurrently with no coordination. Search and
// Fib hold state (the index and the memoization cache) on the engine; both
// are safe for concurrent use.
//
// # Index Staleness
//
// The index for a field is built from the record collection passed to the
// first Search naming that field. Later Search calls for the same field reuse
// the built index and ignore their records argument; see package index.
package recgo
