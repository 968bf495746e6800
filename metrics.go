package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metric for a ready-made adapter).
type MetricsCollector interface {
	// RecordFit is called after each fit.
	// iterations is the number of completed cycles, duration is the total
	// time taken, err is nil if successful.
	RecordFit(points, clusters, iterations int, converged bool, duration time.Duration, err error)

	// RecordIteration is called after every assignment/update cycle.
	RecordIteration(maxDelta float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(int, int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(float64)                            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount       atomic.Int64
	FitErrors      atomic.Int64
	FitConverged   atomic.Int64
	FitTotalNanos  atomic.Int64
	PointsTotal    atomic.Int64
	IterationCount atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(points, _ int, _ int, converged bool, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	b.PointsTotal.Add(int64(points))
	if err != nil {
		b.FitErrors.Add(1)
	}
	if converged {
		b.FitConverged.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(float64) {
	b.IterationCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FitCount:       b.FitCount.Load(),
		FitErrors:      b.FitErrors.Load(),
		FitConverged:   b.FitConverged.Load(),
		FitAvgNanos:    b.getAvgFitNanos(),
		PointsTotal:    b.PointsTotal.Load(),
		IterationCount: b.IterationCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFitNanos() int64 {
	count := b.FitCount.Load()
	if count == 0 {
		return 0
	}
	return b.FitTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FitCount       int64
	FitErrors      int64
	FitConverged   int64
	FitAvgNanos    int64
	PointsTotal    int64
	IterationCount int64
}
