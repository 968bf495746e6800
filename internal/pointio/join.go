package pointio

import (
	"cmp"
	"slices"

	"github.com/hupe1980/kmeans"
)

// Join inner-joins two tables on their first column.
//
// Each output row is the remaining columns of a followed by the remaining
// columns of b. Rows are ordered by key ascending; rows with equal keys keep
// the order of a, then of b. The key column itself is dropped.
func Join(a, b [][]float64) ([][]float64, error) {
	if err := checkKeyed(a, "left"); err != nil {
		return nil, err
	}
	if err := checkKeyed(b, "right"); err != nil {
		return nil, err
	}

	byKey := make(map[float64][]int, len(b))
	for i, row := range b {
		byKey[row[0]] = append(byKey[row[0]], i)
	}

	type keyed struct {
		key float64
		row []float64
	}

	var joined []keyed

	for _, ra := range a {
		for _, i := range byKey[ra[0]] {
			rb := b[i]
			row := make([]float64, 0, len(ra)+len(rb)-2)
			row = append(row, ra[1:]...)
			row = append(row, rb[1:]...)
			joined = append(joined, keyed{key: ra[0], row: row})
		}
	}

	if len(joined) == 0 {
		return nil, kmeans.ErrEmptyPointSet
	}
	if len(joined[0].row) == 0 {
		return nil, kmeans.NewInputFormatError(0, 0, "join leaves no coordinates besides the key", nil)
	}

	slices.SortStableFunc(joined, func(x, y keyed) int { return cmp.Compare(x.key, y.key) })

	out := make([][]float64, len(joined))
	for i, j := range joined {
		out[i] = j.row
	}
	return out, nil
}

func checkKeyed(rows [][]float64, side string) error {
	for i, row := range rows {
		if len(row) == 0 {
			return kmeans.NewInputFormatError(i+1, 0, side+" table row has no key column", nil)
		}
	}
	return nil
}
