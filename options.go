package kdgo

import "runtime"

// defaultBatchConcurrency bounds BatchKNNSearch fan-out when not
// configured explicitly.
var defaultBatchConcurrency = runtime.GOMAXPROCS(0)

type options struct {
	leafSize  int
	logger    *Logger
	metrics   MetricsCollector
	batchSize int
}

// Option configures index construction.
type Option func(*options)

// WithLeafSize configures the maximum number of points stored per
// leaf (default 10). Smaller leaves deepen the tree and sharpen
// pruning; larger leaves shift work to the linear scan at the leaf.
func WithLeafSize(leafSize int) Option {
	return func(o *options) {
		o.leafSize = leafSize
	}
}

// WithLogger configures the logger used for operation logging.
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(metrics MetricsCollector) Option {
	return func(o *options) {
		if metrics == nil {
			metrics = NoopMetricsCollector{}
		}
		o.metrics = metrics
	}
}

// WithBatchConcurrency bounds the number of goroutines BatchKNNSearch
// runs concurrently. Defaults to GOMAXPROCS.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}
