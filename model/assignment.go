package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans/internal/conv"
)

// Unassigned marks a point that has not been through an assignment step yet.
const Unassigned = -1

// ErrInvalidAssignment is returned by Assignment.Validate.
var ErrInvalidAssignment = errors.New("invalid assignment")

// Assignment maps each of N points to exactly one of K clusters.
//
// The primary representation is an N-length slice of cluster indices.
// Members exposes the equivalent one-hot N x K incidence view, one bitmap
// per cluster.
type Assignment struct {
	labels []int
	k      int
}

// NewAssignment returns an assignment for n points and k clusters with every
// point Unassigned.
func NewAssignment(n, k int) *Assignment {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Unassigned
	}
	return &Assignment{labels: labels, k: k}
}

// Len returns N.
func (a *Assignment) Len() int {
	return len(a.labels)
}

// K returns the number of clusters.
func (a *Assignment) K() int {
	return a.k
}

// Cluster returns the cluster of point i, or Unassigned.
func (a *Assignment) Cluster(i int) int {
	return a.labels[i]
}

// Set records cluster as the only cluster of point i, replacing any prior entry.
func (a *Assignment) Set(i, cluster int) {
	a.labels[i] = cluster
}

// Labels returns a copy of the point -> cluster mapping.
func (a *Assignment) Labels() []int {
	return slices.Clone(a.labels)
}

// Counts returns the number of points per cluster.
func (a *Assignment) Counts() []int {
	counts := make([]int, a.k)
	for _, c := range a.labels {
		if c >= 0 && c < a.k {
			counts[c]++
		}
	}
	return counts
}

// Members returns the indices of the points assigned to cluster k.
func (a *Assignment) Members(k int) (*roaring.Bitmap, error) {
	if k < 0 || k >= a.k {
		return nil, fmt.Errorf("%w: cluster %d out of range [0, %d)", ErrInvalidAssignment, k, a.k)
	}

	bm := roaring.New()
	for i, c := range a.labels {
		if c != k {
			continue
		}
		idx, err := conv.IntToUint32(i)
		if err != nil {
			return nil, err
		}
		bm.Add(idx)
	}
	return bm, nil
}

// Validate checks that every point carries a cluster index in [0, K) and
// that the per-cluster member sets partition the point indices.
func (a *Assignment) Validate() error {
	for i, c := range a.labels {
		if c < 0 || c >= a.k {
			return fmt.Errorf("%w: point %d has cluster %d, want [0, %d)", ErrInvalidAssignment, i, c, a.k)
		}
	}

	n, err := conv.IntToUint64(len(a.labels))
	if err != nil {
		return err
	}

	union := roaring.New()
	var total uint64
	for k := 0; k < a.k; k++ {
		members, err := a.Members(k)
		if err != nil {
			return err
		}
		total += members.GetCardinality()
		union.Or(members)
	}

	if union.GetCardinality() != n || total != n {
		return fmt.Errorf("%w: %d points, %d distinct members, %d memberships", ErrInvalidAssignment, n, union.GetCardinality(), total)
	}
	return nil
}
