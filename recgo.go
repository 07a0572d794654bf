package recgo

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/recgo/cache"
	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/index"
	"github.com/hupe1980/recgo/matrix"
	"github.com/hupe1980/recgo/memo"
	"github.com/hupe1980/recgo/record"
	"github.com/hupe1980/recgo/stream"
)

// Approximate per-entry heap costs charged against an attached resource
// controller by the bounded caches.
const (
	memoEntryCost   = 32
	streamEntryCost = 96
)

// Engine is the record-processing engine. It owns the lazy secondary index,
// the memoization cache and the stream enrichment cache; the stateless
// operations are exposed both as package functions and as instrumented
// methods.
//
// Safe for concurrent use.
type Engine struct {
	logger  *Logger
	metrics MetricsCollector
	index   *index.Index
	memo    *memo.Evaluator
	stream  *stream.Processor
}

// New creates an Engine. With no options the engine logs nothing, collects
// no metrics and keeps both caches unbounded.
func New(optFns ...Option) *Engine {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		codec:            codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var memoCache cache.Cache[int, uint64]
	if opts.memoCapacity > 0 {
		memoCache = cache.NewLRU[int, uint64](opts.memoCapacity, opts.rc, memoEntryCost)
	}

	var streamCache cache.Cache[string, record.Value]
	if opts.streamCapacity > 0 {
		streamCache = cache.NewLRU[string, record.Value](opts.streamCapacity, opts.rc, streamEntryCost)
	}

	return &Engine{
		logger:  opts.logger,
		metrics: opts.metricsCollector,
		index:   index.New(),
		memo:    memo.NewEvaluator(memoCache),
		stream: stream.NewProcessor(func(o *stream.Options) {
			o.Codec = opts.codec
			o.Compression = opts.compression
			o.Enrich = opts.enrich
			o.Cache = streamCache
			o.Controller = opts.rc
		}),
	}
}

// Search returns all records whose field equals value, in their original
// relative order.
//
// The index for field is built lazily from the records passed to the first
// Search naming that field; later calls reuse it and do not rescan, even if
// their records argument differs. Unknown fields and values yield an empty
// result, never an error.
func (e *Engine) Search(records []record.Record, field string, value record.Value) []record.Record {
	start := time.Now()
	built := e.index.Built(field)

	matches := e.index.Search(records, field, value)

	e.metrics.RecordSearch(field, !built, len(matches), time.Since(start))
	e.logger.Debug("search", "field", field, "built", !built, "matches", len(matches))
	return matches
}

// Fib returns the n-th Fibonacci number, memoized across calls.
func (e *Engine) Fib(n int) (uint64, error) {
	start := time.Now()

	v, err := e.memo.Fib(n)
	err = translateError(err)

	e.metrics.RecordFib(n, time.Since(start), err)
	if err != nil {
		e.logger.Debug("fib failed", "n", n, "error", err)
		return 0, err
	}
	return v, nil
}

// FibComputed returns the number of cache-miss evaluations the evaluator has
// performed. Useful for verifying cache behavior.
func (e *Engine) FibComputed() int64 {
	return e.memo.Computed()
}

// Statistics computes mean, population variance and standard deviation.
func (e *Engine) Statistics(numbers []float64) (Summary, error) {
	start := time.Now()

	s, err := Statistics(numbers)

	e.metrics.RecordStatistics(len(numbers), time.Since(start), err)
	return s, err
}

// FilterTransform returns the squares of all elements strictly greater than
// threshold, sorted ascending.
func (e *Engine) FilterTransform(data []float64, threshold float64) []float64 {
	start := time.Now()

	out := FilterTransform(data, threshold)

	e.metrics.RecordFilterTransform(len(data), len(out), time.Since(start))
	return out
}

// DeduplicateValues returns the record values occurring more than once in
// items, each reported once. Equality follows record.Value.Key.
func (e *Engine) DeduplicateValues(items []record.Value) []record.Value {
	start := time.Now()

	seen := make(map[string]struct{}, len(items))
	reported := make(map[string]struct{})
	var dups []record.Value
	for _, v := range items {
		k := v.Key()
		if _, ok := seen[k]; ok {
			if _, done := reported[k]; !done {
				reported[k] = struct{}{}
				dups = append(dups, v)
			}
			continue
		}
		seen[k] = struct{}{}
	}

	e.metrics.RecordDeduplicate(len(items), len(dups), time.Since(start))
	return dups
}

// MergeRecords concatenates two record sets and drops records with identical
// content, keeping the first occurrence and the combined order.
func (e *Engine) MergeRecords(a, b []record.Record) []record.Record {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]record.Record, 0, len(a)+len(b))
	for _, set := range [2][]record.Record{a, b} {
		for _, r := range set {
			k := r.CanonicalKey()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// MultiplyMatrices returns the product a×b, rejecting incompatible shapes
// with a DimensionMismatchError.
func (e *Engine) MultiplyMatrices(a, b [][]float64) ([][]float64, error) {
	out, err := matrix.Multiply(a, b)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// ProcessStream reads newline-delimited records from r, enriches each with
// the configured (memoized) computation, and returns them in input order.
func (e *Engine) ProcessStream(ctx context.Context, r io.Reader) ([]record.Record, error) {
	start := time.Now()

	records, err := e.stream.Process(ctx, r)

	e.metrics.RecordStream(len(records), time.Since(start), err)
	if err != nil {
		e.logger.Debug("stream failed", "error", err)
		return nil, err
	}
	return records, nil
}

// Reset drops all engine state built from prior calls: built field indexes,
// memoized evaluator results and cached stream enrichments.
func (e *Engine) Reset() {
	e.index.Reset()
	e.memo.Reset()
	e.stream.Reset()
	e.logger.Debug("engine state reset")
}
