package model

import "fmt"

// CentroidSet holds the K centroids of a run. It is owned by a single
// clusterer and mutated in place during the update step.
type CentroidSet struct {
	centroids []Vector
	dim       int
}

// NewCentroidSet copies rows into a new CentroidSet.
func NewCentroidSet(rows []Vector) (*CentroidSet, error) {
	centroids, dim, err := packRows(rows)
	if err != nil {
		return nil, err
	}
	return &CentroidSet{centroids: centroids, dim: dim}, nil
}

// SeedFirstK creates a CentroidSet from copies of the first k points.
func SeedFirstK(points *PointSet, k int) (*CentroidSet, error) {
	if k <= 0 || k > points.Len() {
		return nil, fmt.Errorf("seed: k=%d out of range [1, %d]", k, points.Len())
	}
	return NewCentroidSet(points.points[:k])
}

// Len returns K, the number of centroids.
func (c *CentroidSet) Len() int {
	return len(c.centroids)
}

// Dim returns the dimension of every centroid.
func (c *CentroidSet) Dim() int {
	return c.dim
}

// At returns the i-th centroid. The returned vector aliases the set.
func (c *CentroidSet) At(i int) Vector {
	return c.centroids[i]
}

// Set overwrites the i-th centroid with the coordinates of v.
func (c *CentroidSet) Set(i int, v Vector) error {
	if err := v.CheckDim(c.dim); err != nil {
		return err
	}
	copy(c.centroids[i], v)
	return nil
}

// Rows returns a deep copy of the centroids as plain float64 slices.
func (c *CentroidSet) Rows() [][]float64 {
	out := make([][]float64, len(c.centroids))
	for i, v := range c.centroids {
		out[i] = []float64(v.Clone())
	}
	return out
}

// Clone returns a deep copy of the set.
func (c *CentroidSet) Clone() *CentroidSet {
	centroids, _, _ := packRows(c.centroids)
	return &CentroidSet{centroids: centroids, dim: c.dim}
}
