package kmeans

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/model"
)

var (
	// ErrInvalidConfig is returned by New for unusable loop parameters.
	ErrInvalidConfig = errors.New("invalid clusterer config")

	// ErrAlreadyRun is returned when Run is called on a finished clusterer.
	ErrAlreadyRun = errors.New("clusterer already run")
)

// State is the lifecycle state of a Clusterer.
type State int

const (
	StateInitialized State = iota
	StateIterating
	StateConverged
	StateIterationCapReached
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateIterationCapReached:
		return "iteration_cap_reached"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Config holds the loop parameters.
type Config struct {
	MaxIterations int
	Epsilon       float64

	// OnIteration, if set, is called after every assignment/update cycle
	// with the 0-based iteration index and that iteration's max delta.
	OnIteration func(iteration int, maxDelta float64)
}

// Clusterer runs one k-means loop to completion.
type Clusterer struct {
	points     *model.PointSet
	centroids  *model.CentroidSet
	assignment *model.Assignment
	cfg        Config

	state      State
	iterations int
	maxDelta   float64
}

// New validates the inputs and returns a Clusterer in StateInitialized.
// Dimension mismatches between points and centroids are rejected here,
// before any iteration runs.
func New(points *model.PointSet, centroids *model.CentroidSet, cfg Config) (*Clusterer, error) {
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations %d < 1", ErrInvalidConfig, cfg.MaxIterations)
	}
	if cfg.Epsilon < 0 || math.IsNaN(cfg.Epsilon) {
		return nil, fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, cfg.Epsilon)
	}
	if centroids.Dim() != points.Dim() {
		return nil, &model.DimensionMismatchError{Expected: points.Dim(), Actual: centroids.Dim(), Index: -1}
	}

	return &Clusterer{
		points:     points,
		centroids:  centroids,
		assignment: model.NewAssignment(points.Len(), centroids.Len()),
		cfg:        cfg,
		state:      StateInitialized,
	}, nil
}

// Run iterates until convergence or until MaxIterations cycles have run.
// ctx is checked before every iteration; a cancelled run leaves the
// centroids in the state of the last completed iteration.
func (c *Clusterer) Run(ctx context.Context) error {
	if c.state != StateInitialized {
		return ErrAlreadyRun
	}
	c.state = StateIterating

	for i := 0; i < c.cfg.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := Assign(c.points, c.centroids, c.assignment); err != nil {
			return err
		}

		maxDelta, err := Update(c.points, c.centroids, c.assignment)
		if err != nil {
			return err
		}

		c.iterations = i + 1
		c.maxDelta = maxDelta

		if c.cfg.OnIteration != nil {
			c.cfg.OnIteration(i, maxDelta)
		}

		if maxDelta <= c.cfg.Epsilon {
			c.state = StateConverged
			return nil
		}
	}

	c.state = StateIterationCapReached
	return nil
}

// State returns the current lifecycle state.
func (c *Clusterer) State() State { return c.state }

// Iterations returns the number of completed assignment/update cycles.
func (c *Clusterer) Iterations() int { return c.iterations }

// MaxDelta returns the max delta of the last completed iteration.
func (c *Clusterer) MaxDelta() float64 { return c.maxDelta }

// Centroids returns the centroids owned by the clusterer.
func (c *Clusterer) Centroids() *model.CentroidSet { return c.centroids }

// Assignment returns the assignment computed by the last iteration.
func (c *Clusterer) Assignment() *model.Assignment { return c.assignment }

// Assign rebuilds a so that every point maps to its nearest centroid.
// Ties go to the lowest centroid index.
func Assign(points *model.PointSet, centroids *model.CentroidSet, a *model.Assignment) error {
	for i := 0; i < points.Len(); i++ {
		best, _, err := distance.Nearest(points.At(i), centroids.Len(), centroids.At)
		if err != nil {
			return fmt.Errorf("assign point %d: %w", i, err)
		}
		a.Set(i, best)
	}
	return nil
}

// Update moves every centroid to the mean of the points assigned to it and
// returns the largest distance any centroid moved.
//
// A centroid without members keeps its previous value and contributes a
// delta of 0.
func Update(points *model.PointSet, centroids *model.CentroidSet, a *model.Assignment) (float64, error) {
	k := centroids.Len()
	dim := centroids.Dim()

	if points.Dim() != dim {
		return 0, &model.DimensionMismatchError{Expected: points.Dim(), Actual: dim, Index: -1}
	}

	sums := make([]float64, k*dim)
	counts := make([]int, k)

	for i := 0; i < points.Len(); i++ {
		c := a.Cluster(i)
		if c < 0 || c >= k {
			return 0, fmt.Errorf("%w: point %d has cluster %d", model.ErrInvalidAssignment, i, c)
		}
		floats.Add(sums[c*dim:(c+1)*dim], points.At(i))
		counts[c]++
	}

	var maxDelta float64

	for j := 0; j < k; j++ {
		if counts[j] == 0 {
			continue
		}

		mean := model.Vector(sums[j*dim : (j+1)*dim])
		size := float64(counts[j])
		for d := range mean {
			mean[d] /= size
		}

		delta, err := distance.Euclidean(mean, centroids.At(j))
		if err != nil {
			return 0, err
		}
		if err := centroids.Set(j, mean); err != nil {
			return 0, err
		}

		if delta > maxDelta {
			maxDelta = delta
		}
	}

	return maxDelta, nil
}
