package metric

import (
	"time"

	"github.com/hupe1980/kmeans"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "kmeans"

// PrometheusCollector implements kmeans.MetricsCollector on Prometheus
// counters, gauges and histograms.
type PrometheusCollector struct {
	FitsTotal      *prometheus.CounterVec
	FitsConverged  prometheus.Counter
	FitDuration    prometheus.Histogram
	FitIterations  prometheus.Histogram
	PointsTotal    prometheus.Counter
	ClustersLast   prometheus.Gauge
	IterationTotal prometheus.Counter
	MaxDeltaLast   prometheus.Gauge
}

var _ kmeans.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the collector's metrics with reg.
// An empty namespace selects DefaultNamespace.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	f := promauto.With(reg)

	return &PrometheusCollector{
		FitsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fits_total",
			Help:      "Number of completed fit calls",
		}, []string{"status"}), // status: ok/error
		FitsConverged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fits_converged_total",
			Help:      "Number of fits that stopped because the largest centroid movement fell below epsilon",
		}),
		FitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Wall time of fit calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		FitIterations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_iterations",
			Help:      "Assignment/update cycles per fit",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 999},
		}),
		PointsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points clustered across all fits",
		}),
		ClustersLast: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "K of the most recent fit",
		}),
		IterationTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Assignment/update cycles across all fits",
		}),
		MaxDeltaLast: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "iteration_max_delta",
			Help:      "Largest centroid movement in the most recent iteration",
		}),
	}
}

// RecordFit implements kmeans.MetricsCollector.
func (c *PrometheusCollector) RecordFit(points, clusters, iterations int, converged bool, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	c.FitsTotal.WithLabelValues(status).Inc()
	c.FitDuration.Observe(duration.Seconds())
	c.PointsTotal.Add(float64(points))
	c.ClustersLast.Set(float64(clusters))

	if err == nil {
		c.FitIterations.Observe(float64(iterations))
	}
	if converged {
		c.FitsConverged.Inc()
	}
}

// RecordIteration implements kmeans.MetricsCollector.
func (c *PrometheusCollector) RecordIteration(maxDelta float64) {
	c.IterationTotal.Inc()
	c.MaxDeltaLast.Set(maxDelta)
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for pickup by the node exporter's textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
