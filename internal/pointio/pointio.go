package pointio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans"
)

// Precision is the number of decimal digits written per coordinate.
const Precision = 4

// Parse reads all points from r.
//
// The dimension is taken from the first point; every later point must
// match it. An input without points fails with kmeans.ErrEmptyPointSet.
func Parse(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		rows [][]float64
		dim  int
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, kmeans.NewInputFormatError(pe.Line, pe.Column, pe.Err.Error(), err)
			}
			return nil, fmt.Errorf("read points: %w", err)
		}

		line, _ := cr.FieldPos(0)

		if len(rows) == 0 {
			dim = len(record)
		} else if len(record) != dim {
			return nil, kmeans.NewInputFormatError(line, 0, "inconsistent dimension",
				&kmeans.DimensionMismatchError{Expected: dim, Actual: len(record), Index: len(rows)})
		}

		row := make([]float64, len(record))
		for j, field := range record {
			f, err := parseCoordinate(field)
			if err != nil {
				_, col := cr.FieldPos(j)
				return nil, kmeans.NewInputFormatError(line, col, fmt.Sprintf("invalid coordinate %q", field), err)
			}
			row[j] = f
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, kmeans.ErrEmptyPointSet
	}

	return rows, nil
}

func parseCoordinate(field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("non-finite value")
	}
	return f, nil
}

// Format writes rows to w, one per line, with Precision decimal digits per
// coordinate.
func Format(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)

	buf := make([]byte, 0, 64)
	for _, row := range rows {
		buf = buf[:0]
		for j, f := range row {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = strconv.AppendFloat(buf, f, 'f', Precision, 64)
		}
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}
