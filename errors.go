package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans/model"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrInputFormat is matched by every *InputFormatError.
	ErrInputFormat = errors.New("input format error")

	// ErrAllocation is matched by every *AllocationError.
	ErrAllocation = errors.New("allocation error")

	// ErrDimensionMismatch indicates a point or centroid whose dimension
	// differs from the run's dimension.
	ErrDimensionMismatch = model.ErrDimensionMismatch

	// ErrEmptyPointSet is returned when no points are given.
	ErrEmptyPointSet = model.ErrEmpty
)

// DimensionMismatchError indicates a vector/centroid dimensionality mismatch.
type DimensionMismatchError = model.DimensionMismatchError

// ConfigurationError reports an invalid run parameter such as K or the
// iteration cap.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// InputFormatError reports malformed input data.
//
// Line and Column are 1-based; zero means unknown. The wrapped cause, if
// any, is returned by errors.Unwrap.
type InputFormatError struct {
	Line   int
	Column int
	Reason string
	cause  error
}

// NewInputFormatError creates an InputFormatError wrapping cause.
func NewInputFormatError(line, column int, reason string, cause error) *InputFormatError {
	return &InputFormatError{Line: line, Column: column, Reason: reason, cause: cause}
}

func (e *InputFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("input format: line %d, column %d: %s", e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("input format: line %d: %s", e.Line, e.Reason)
	default:
		return "input format: " + e.Reason
	}
}

// Is reports whether target is ErrInputFormat.
func (e *InputFormatError) Is(target error) bool { return target == ErrInputFormat }

func (e *InputFormatError) Unwrap() error { return e.cause }

// AllocationError reports a request that exceeds the configured element budget.
type AllocationError struct {
	Requested int
	Limit     int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation of %d float64 values exceeds limit %d", e.Requested, e.Limit)
}

// Is reports whether target is ErrAllocation.
func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }
