package kmeans

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/internal/conv"
	engine "github.com/hupe1980/kmeans/internal/kmeans"
	"github.com/hupe1980/kmeans/model"
)

// Result is the outcome of a completed fit.
type Result struct {
	// Centroids are the final K centroids, in seed order.
	Centroids [][]float64

	// Assignment maps every point index to its cluster index, as computed by
	// the last assignment step.
	Assignment []int

	// Iterations is the number of assignment/update cycles that ran.
	Iterations int

	// Converged is true when the loop stopped because MaxDelta <= epsilon,
	// false when it stopped at the iteration cap.
	Converged bool

	// MaxDelta is the largest centroid movement of the last iteration.
	MaxDelta float64

	// Inertia is the sum of squared distances from each point to the final
	// centroid of its cluster.
	Inertia float64
}

// Fit clusters points starting from the given centroids.
//
// points and centroids must be non-empty and share one dimension. Inputs are
// copied; neither slice is modified. Fit is deterministic: identical inputs
// and options yield bit-identical centroids.
func Fit(ctx context.Context, points, centroids [][]float64, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)

	if o.maxIterations < 1 {
		return nil, &ConfigurationError{Field: "max_iterations", Value: o.maxIterations, Reason: "must be at least 1"}
	}
	if o.epsilon < 0 || math.IsNaN(o.epsilon) {
		return nil, &ConfigurationError{Field: "epsilon", Value: o.epsilon, Reason: "must be a non-negative number"}
	}
	if err := checkAllocation(points, centroids, o.maxElements); err != nil {
		return nil, err
	}

	ps, err := model.NewPointSet(toVectors(points))
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	cs, err := model.NewCentroidSet(toVectors(centroids))
	if err != nil {
		return nil, fmt.Errorf("centroids: %w", err)
	}

	logger := o.logger.WithCount(ps.Len()).WithK(cs.Len()).WithDimension(ps.Dim())
	start := time.Now()

	c, err := engine.New(ps, cs, engine.Config{
		MaxIterations: o.maxIterations,
		Epsilon:       o.epsilon,
		OnIteration: func(i int, maxDelta float64) {
			logger.LogIteration(ctx, i, maxDelta)
			o.metricsCollector.RecordIteration(maxDelta)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("centroids: %w", err)
	}

	err = c.Run(ctx)
	converged := c.State() == engine.StateConverged

	o.metricsCollector.RecordFit(ps.Len(), cs.Len(), c.Iterations(), converged, time.Since(start), err)
	logger.LogFit(ctx, c.Iterations(), converged, err)

	if err != nil {
		return nil, err
	}

	return &Result{
		Centroids:  c.Centroids().Rows(),
		Assignment: c.Assignment().Labels(),
		Iterations: c.Iterations(),
		Converged:  converged,
		MaxDelta:   c.MaxDelta(),
		Inertia:    inertia(ps, c.Centroids(), c.Assignment()),
	}, nil
}

// FitCentroids is Fit reduced to its final centroids.
func FitCentroids(ctx context.Context, points, centroids [][]float64, optFns ...Option) ([][]float64, error) {
	res, err := Fit(ctx, points, centroids, optFns...)
	if err != nil {
		return nil, err
	}
	return res.Centroids, nil
}

// Predict returns the index of the centroid nearest to point.
// Ties resolve to the lowest index.
func Predict(point []float64, centroids [][]float64) (int, error) {
	if len(centroids) == 0 {
		return -1, fmt.Errorf("centroids: %w", ErrEmptyPointSet)
	}
	idx, _, err := distance.Nearest(point, len(centroids), func(i int) model.Vector {
		return centroids[i]
	})
	if err != nil {
		return -1, err
	}
	return idx, nil
}

func toVectors(rows [][]float64) []model.Vector {
	out := make([]model.Vector, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

func checkAllocation(points, centroids [][]float64, limit int) error {
	if len(points) == 0 {
		return nil
	}
	dim := len(points[0])

	p, err := conv.MulInt(len(points), dim)
	if err != nil {
		return &AllocationError{Requested: math.MaxInt, Limit: limit}
	}
	c, err := conv.MulInt(len(centroids), dim)
	if err != nil || p > math.MaxInt-c {
		return &AllocationError{Requested: math.MaxInt, Limit: limit}
	}
	if p+c > limit {
		return &AllocationError{Requested: p + c, Limit: limit}
	}
	return nil
}

func inertia(ps *model.PointSet, cs *model.CentroidSet, a *model.Assignment) float64 {
	var sum float64
	for i := 0; i < ps.Len(); i++ {
		d, err := distance.SquaredEuclidean(ps.At(i), cs.At(a.Cluster(i)))
		if err != nil {
			continue
		}
		sum += d
	}
	return sum
}
