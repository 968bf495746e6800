// Package kmeans provides deterministic k-means clustering of float64 points.
//
// The caller supplies N points of a common dimension D and K initial
// centroids (already seeded, typically the first K points). Fit alternates
// an assignment step (every point to its nearest centroid, lowest index on
// ties) and an update step (every centroid to the mean of its members) until
// the largest centroid movement of an iteration is at most epsilon, or the
// iteration cap is reached.
//
// # Quick Start
//
//	ctx := context.Background()
//	points := [][]float64{{0, 0}, {0, 2}, {2, 0}, {2, 2}}
//	res, err := kmeans.Fit(ctx, points, points[:2],
//	    kmeans.WithMaxIterations(10),
//	    kmeans.WithEpsilon(0.001),
//	)
//	// res.Centroids == [[1 0] [1 2]]
//
// # Empty Clusters
//
// A centroid that attracts no points during an iteration keeps its previous
// value and counts as not having moved.
//
// # Errors
//
// Failures are reported through sentinel errors usable with errors.Is:
// ErrConfiguration, ErrInputFormat, ErrDimensionMismatch, ErrAllocation and
// ErrEmptyPointSet. A failed fit never returns partial centroids.
//
// # Observability
//
// Use WithLogger for structured slog output (per-iteration at debug level)
// and WithMetricsCollector to plug in metrics; package metric provides a
// Prometheus collector.
//
// # Concurrency
//
// Fit is synchronous and single-threaded. Separate Fit calls share no state
// and may run concurrently. ctx is checked between iterations.
package kmeans
