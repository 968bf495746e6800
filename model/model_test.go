package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointSet(t *testing.T) {
	t.Run("CopiesInput", func(t *testing.T) {
		rows := []Vector{{0, 0}, {1, 2}}
		ps, err := NewPointSet(rows)
		require.NoError(t, err)

		rows[1][0] = 99
		assert.Equal(t, 2, ps.Len())
		assert.Equal(t, 2, ps.Dim())
		assert.Equal(t, Vector{1, 2}, ps.At(1))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewPointSet(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("ZeroDimension", func(t *testing.T) {
		_, err := NewPointSet([]Vector{{}})
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := NewPointSet([]Vector{{1, 2}, {3, 4}, {5}})
		require.ErrorIs(t, err, ErrDimensionMismatch)

		var dm *DimensionMismatchError
		require.True(t, errors.As(err, &dm))
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)
		assert.Equal(t, 2, dm.Index)
	})

	t.Run("RowsDoNotOverlap", func(t *testing.T) {
		ps, err := NewPointSet([]Vector{{1}, {2}})
		require.NoError(t, err)
		assert.Equal(t, 1, cap(ps.At(0)))
	})
}

func TestCentroidSet(t *testing.T) {
	ps, err := NewPointSet([]Vector{{0, 0}, {0, 2}, {2, 0}, {2, 2}})
	require.NoError(t, err)

	cs, err := SeedFirstK(ps, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, [][]float64{{0, 0}, {0, 2}}, cs.Rows())

	require.NoError(t, cs.Set(0, Vector{5, 5}))
	assert.Equal(t, Vector{5, 5}, cs.At(0))
	assert.Equal(t, Vector{0, 0}, ps.At(0), "seeding must copy points")

	err = cs.Set(1, Vector{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	clone := cs.Clone()
	require.NoError(t, clone.Set(0, Vector{7, 7}))
	assert.Equal(t, Vector{5, 5}, cs.At(0))

	_, err = SeedFirstK(ps, 5)
	assert.Error(t, err)
	_, err = SeedFirstK(ps, 0)
	assert.Error(t, err)
}

func TestVector(t *testing.T) {
	v := Vector{1, 2, 3}
	c := v.Clone()
	c[0] = 9
	assert.Equal(t, 3, v.Dim())
	assert.Equal(t, 1.0, v[0])
	assert.False(t, v.Equal(c))
	assert.True(t, v.Equal(Vector{1, 2, 3}))

	assert.NoError(t, v.CheckDim(3))
	err := v.CheckDim(2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, "dimension mismatch: expected 2, got 3", err.Error())
}

func TestAssignment(t *testing.T) {
	a := NewAssignment(4, 2)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 2, a.K())
	assert.Equal(t, Unassigned, a.Cluster(0))
	assert.ErrorIs(t, a.Validate(), ErrInvalidAssignment)

	a.Set(0, 0)
	a.Set(1, 1)
	a.Set(2, 0)
	a.Set(3, 1)
	require.NoError(t, a.Validate())

	assert.Equal(t, []int{0, 1, 0, 1}, a.Labels())
	assert.Equal(t, []int{2, 2}, a.Counts())

	m0, err := a.Members(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 2}, m0.ToArray())

	m1, err := a.Members(1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, m1.ToArray())

	// Reassigning replaces the previous entry.
	a.Set(2, 1)
	m1, err = a.Members(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), m1.GetCardinality())
	require.NoError(t, a.Validate())

	_, err = a.Members(2)
	assert.ErrorIs(t, err, ErrInvalidAssignment)

	a.Set(3, 5)
	assert.ErrorIs(t, a.Validate(), ErrInvalidAssignment)
}
