// Package metric adapts kmeans.MetricsCollector to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	res, err := kmeans.Fit(ctx, points, seeds,
//	    kmeans.WithMetricsCollector(metric.NewPrometheusCollector(reg, "")))
//
// Short-lived processes such as the command-line tool can persist a run's
// metrics with WriteTextfile.
package metric
