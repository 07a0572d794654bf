package recgo

import (
	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/resource"
	"github.com/hupe1980/recgo/stream"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	codec            codec.Codec
	memoCapacity     int
	streamCapacity   int
	compression      stream.Compression
	enrich           stream.EnrichFunc
	rc               *resource.Controller
}

// Option configures engine construction.
//
// Options exist to avoid exploding the API surface with constructor
// variants.
type Option func(*options)

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
// If nil is passed, metrics are disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCodec configures the codec used by the stream processor.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMemoCapacity bounds the evaluator's memoization cache to capacity
// entries, evicted least-recently-used. A capacity of 0 (the default) keeps
// the cache unbounded.
func WithMemoCapacity(capacity int) Option {
	return func(o *options) {
		o.memoCapacity = capacity
	}
}

// WithStreamCacheCapacity bounds the stream enrichment cache to capacity
// entries, evicted least-recently-used. A capacity of 0 (the default) keeps
// the cache unbounded.
func WithStreamCacheCapacity(capacity int) Option {
	return func(o *options) {
		o.streamCapacity = capacity
	}
}

// WithStreamCompression configures transport decoding for ProcessStream
// input (gzip or lz4). The default reads the stream as-is.
func WithStreamCompression(c stream.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithEnrichFunc replaces the stream processor's enrichment function.
// The function must be pure; results are cached by record content.
func WithEnrichFunc(fn stream.EnrichFunc) Option {
	return func(o *options) {
		o.enrich = fn
	}
}

// WithResourceController attaches a resource controller: bounded caches
// charge their entries against its memory budget, and ProcessStream throttles
// reads against its IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}
