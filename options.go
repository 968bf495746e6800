package kmeans

import (
	"log/slog"
)

const (
	// DefaultMaxIterations is the iteration cap used when none is configured.
	DefaultMaxIterations = 200

	// DefaultEpsilon is the convergence threshold used when none is configured.
	DefaultEpsilon = 0.001

	// DefaultMaxElements bounds the number of float64 values a single fit may
	// copy (points plus centroids). 1<<28 values is 2 GiB.
	DefaultMaxElements = 1 << 28
)

type options struct {
	maxIterations    int
	epsilon          float64
	maxElements      int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a fit.
type Option func(*options)

// WithMaxIterations sets the maximum number of assignment/update cycles.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithEpsilon sets the convergence threshold on the largest centroid
// movement of one iteration.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithMaxElements bounds the number of float64 values a fit may allocate.
// Requests above the bound fail with ErrAllocation before any copy is made.
func WithMaxElements(n int) Option {
	return func(o *options) {
		o.maxElements = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring fits.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans.BasicMetricsCollector{}
//	res, _ := kmeans.Fit(ctx, points, seeds, kmeans.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Fits: %d, Avg latency: %dns\n", stats.FitCount, stats.FitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for fits.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans.NewJSONLogger(slog.LevelDebug)
//	res, _ := kmeans.Fit(ctx, points, seeds, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		epsilon:          DefaultEpsilon,
		maxElements:      DefaultMaxElements,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
