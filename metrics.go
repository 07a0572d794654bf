package recgo

import "time"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDeduplicate is called after each deduplication.
	// n is the input length, found is the number of duplicate values.
	RecordDeduplicate(n, found int, duration time.Duration)

	// RecordStatistics is called after each statistics computation.
	// n is the input length, err is nil if successful.
	RecordStatistics(n int, duration time.Duration, err error)

	// RecordFilterTransform is called after each filter-transform run.
	// n is the input length, kept is the number of elements passing the filter.
	RecordFilterTransform(n, kept int, duration time.Duration)

	// RecordSearch is called after each indexed search.
	// built is true when this call triggered the index build for the field,
	// matches is the number of records returned.
	RecordSearch(field string, built bool, matches int, duration time.Duration)

	// RecordFib is called after each evaluator call.
	// err is nil if successful.
	RecordFib(n int, duration time.Duration, err error)

	// RecordStream is called after each stream processing run.
	// records is the number of records produced, err is nil if successful.
	RecordStream(records int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDeduplicate(int, int, time.Duration)     {}
func (NoopMetricsCollector) RecordStatistics(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordFilterTransform(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordSearch(string, bool, int, time.Duration) {}
func (NoopMetricsCollector) RecordFib(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordStream(int, time.Duration, error)        {}
