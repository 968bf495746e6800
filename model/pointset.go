package model

// PointSet is the immutable input of a clustering run.
//
// Vectors returned by At share memory with the set and must not be modified.
type PointSet struct {
	points []Vector
	dim    int
}

// NewPointSet copies rows into a new PointSet.
// All rows must have the same non-zero dimension.
func NewPointSet(rows []Vector) (*PointSet, error) {
	points, dim, err := packRows(rows)
	if err != nil {
		return nil, err
	}
	return &PointSet{points: points, dim: dim}, nil
}

// Len returns N, the number of points.
func (s *PointSet) Len() int {
	return len(s.points)
}

// Dim returns D, the dimension of every point.
func (s *PointSet) Dim() int {
	return s.dim
}

// At returns the i-th point.
func (s *PointSet) At(i int) Vector {
	return s.points[i]
}
