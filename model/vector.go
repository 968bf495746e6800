package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidDimension is returned when a vector has no coordinates.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrEmpty is returned when a set would contain no vectors.
	ErrEmpty = errors.New("empty vector set")
)

// DimensionMismatchError reports a vector whose length differs from the
// dimension fixed for the run.
//
// Index is the position of the offending vector in its set, or -1 when the
// mismatch was found between two standalone vectors.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	Index    int
}

func (e *DimensionMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch at index %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Vector is an ordered sequence of D coordinates.
type Vector []float64

// Dim returns the number of coordinates.
func (v Vector) Dim() int {
	return len(v)
}

// Clone returns a copy of v that shares no memory with it.
func (v Vector) Clone() Vector {
	return slices.Clone(v)
}

// Equal reports whether v and o have the same dimension and coordinates.
func (v Vector) Equal(o Vector) bool {
	return slices.Equal(v, o)
}

// CheckDim returns a *DimensionMismatchError if len(v) != dim.
func (v Vector) CheckDim(dim int) error {
	if len(v) != dim {
		return &DimensionMismatchError{Expected: dim, Actual: len(v), Index: -1}
	}
	return nil
}

// packRows validates rows and copies them into one contiguous backing array.
// The returned vectors are windows into that array.
func packRows(rows []Vector) ([]Vector, int, error) {
	if len(rows) == 0 {
		return nil, 0, ErrEmpty
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, 0, ErrInvalidDimension
	}

	data := make([]float64, len(rows)*dim)
	out := make([]Vector, len(rows))

	for i, r := range rows {
		if len(r) != dim {
			return nil, 0, &DimensionMismatchError{Expected: dim, Actual: len(r), Index: i}
		}
		// Full slice expression caps each row so appends cannot bleed into the next.
		row := data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(row, r)
		out[i] = row
	}

	return out, dim, nil
}
