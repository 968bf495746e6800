package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors scattered around `clusters` random
// centers in [-10, 10)^dim with gaussian noise of the given spread.
// Point i belongs to center i % clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([][]float64, clusters)
	for c := range centers {
		centers[c] = make([]float64, dim)
		for j := range dim {
			centers[c][j] = r.rand.Float64()*20 - 10
		}
	}

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)

	for i := range num {
		center := centers[i%clusters]
		vec := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = center[j] + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// BruteForceNearest returns the index of the closest centroid to p by
// squared Euclidean distance, lowest index on ties.
func BruteForceNearest(centroids [][]float64, p []float64) int {
	best := -1
	bestDist := math.Inf(1)

	for i, c := range centroids {
		var d float64
		for j := range p {
			diff := p[j] - c[j]
			d += diff * diff
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return best
}
