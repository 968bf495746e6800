package distance

import (
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmeans/model"
)

// Func is a function type for distance calculation.
type Func func(a, b model.Vector) (float64, error)

// Euclidean returns the square root of the sum of squared coordinate
// differences between a and b.
func Euclidean(a, b model.Vector) (float64, error) {
	if err := b.CheckDim(len(a)); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 2), nil
}

// SquaredEuclidean returns the sum of squared coordinate differences between a and b.
func SquaredEuclidean(a, b model.Vector) (float64, error) {
	if err := b.CheckDim(len(a)); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}

// Nearest returns the index of the candidate closest to v and its distance.
//
// Candidates are scanned in index order and only a strictly smaller distance
// replaces the running best, so ties resolve to the lowest index.
// Nearest returns -1 when there are no candidates.
func Nearest(v model.Vector, n int, candidate func(i int) model.Vector) (int, float64, error) {
	best := -1
	var bestDist float64

	for i := 0; i < n; i++ {
		d, err := Euclidean(v, candidate(i))
		if err != nil {
			return -1, 0, err
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	return best, bestDist, nil
}
