package binding

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/hupe1980/kmeans"
	"github.com/hupe1980/kmeans/model"
)

// FromNested converts a nested sequence into rectangular float64 rows.
//
// v may be [][]float64, [][]any or []any whose elements are []any or
// []float64. Every leaf must be a finite number; all rows must have the
// same non-zero length. field names the value in error messages.
func FromNested(v any, field string) ([][]float64, error) {
	var outer []any

	switch t := v.(type) {
	case [][]float64:
		outer = make([]any, len(t))
		for i, r := range t {
			outer[i] = r
		}
	case [][]any:
		outer = make([]any, len(t))
		for i, r := range t {
			outer[i] = r
		}
	case []any:
		outer = t
	default:
		return nil, kmeans.NewInputFormatError(0, 0, fmt.Sprintf("%s: expected a list of lists, got %T", field, v), nil)
	}

	rows := make([][]float64, len(outer))
	dim := -1

	for i, item := range outer {
		row, err := rowFromNested(item, field, i)
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			return nil, kmeans.NewInputFormatError(i+1, 0, fmt.Sprintf("%s: row has no coordinates", field), model.ErrInvalidDimension)
		}
		if dim == -1 {
			dim = len(row)
		} else if len(row) != dim {
			return nil, kmeans.NewInputFormatError(i+1, 0, fmt.Sprintf("%s: inconsistent dimension", field),
				&model.DimensionMismatchError{Expected: dim, Actual: len(row), Index: i})
		}
		rows[i] = row
	}

	return rows, nil
}

func rowFromNested(item any, field string, i int) ([]float64, error) {
	switch r := item.(type) {
	case []float64:
		for j, f := range r {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, kmeans.NewInputFormatError(i+1, j+1, fmt.Sprintf("%s: non-finite value %v", field, f), nil)
			}
		}
		return append([]float64(nil), r...), nil
	case []any:
		row := make([]float64, len(r))
		for j, x := range r {
			f, err := toFloat(x)
			if err != nil {
				return nil, kmeans.NewInputFormatError(i+1, j+1, fmt.Sprintf("%s: %v", field, err), nil)
			}
			row[j] = f
		}
		return row, nil
	default:
		return nil, kmeans.NewInputFormatError(i+1, 0, fmt.Sprintf("%s: expected a list, got %T", field, item), nil)
	}
}

func toFloat(x any) (float64, error) {
	var f float64

	switch n := x.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", n.String())
		}
		f = v
	default:
		return 0, fmt.Errorf("expected a number, got %T", x)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %v", f)
	}
	return f, nil
}

// ToNested converts rows into the []any shape hosts expect back.
func ToNested(rows [][]float64) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		inner := make([]any, len(r))
		for j, f := range r {
			inner[j] = f
		}
		out[i] = inner
	}
	return out
}
