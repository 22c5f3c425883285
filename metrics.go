package kdgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter    prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSearch(k int, duration time.Duration, err error) {
//	    p.searchHistogram.Observe(duration.Seconds())
//	    // ... record error state, k, etc.
//	}
type MetricsCollector interface {
	// RecordBuild is called after each build or rebuild.
	// points is the number of points indexed, duration is the total
	// time taken, err is nil if successful.
	RecordBuild(points int, duration time.Duration, err error)

	// RecordSearch is called after each KNN search.
	// k is the number of neighbors requested, duration is the time
	// taken, err is nil if successful.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordRadiusSearch is called after each radius search.
	RecordRadiusSearch(duration time.Duration, err error)

	// RecordBatchSearch is called after each batch KNN search.
	// count is the number of queries attempted.
	RecordBatchSearch(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordRadiusSearch(time.Duration, error)     {}
func (NoopMetricsCollector) RecordBatchSearch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount             atomic.Int64
	BuildErrors            atomic.Int64
	BuildTotalNanos        atomic.Int64
	SearchCount            atomic.Int64
	SearchErrors           atomic.Int64
	SearchTotalNanos       atomic.Int64
	RadiusSearchCount      atomic.Int64
	RadiusSearchErrors     atomic.Int64
	RadiusSearchTotalNanos atomic.Int64
	BatchSearchCount       atomic.Int64
	BatchSearchQueries     atomic.Int64
	BatchSearchErrors      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRadiusSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRadiusSearch(duration time.Duration, err error) {
	b.RadiusSearchCount.Add(1)
	b.RadiusSearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RadiusSearchErrors.Add(1)
	}
}

// RecordBatchSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchSearch(count int, duration time.Duration, err error) {
	b.BatchSearchCount.Add(1)
	b.BatchSearchQueries.Add(int64(count))
	if err != nil {
		b.BatchSearchErrors.Add(1)
	}
}

// AverageSearchLatency returns the mean KNN search latency, or 0 if no
// searches were recorded.
func (b *BasicMetricsCollector) AverageSearchLatency() time.Duration {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.SearchTotalNanos.Load() / count)
}
