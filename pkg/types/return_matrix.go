package types

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

var ErrNonFinite = errors.New("return matrix contains non-finite values")

// ReturnMatrix is a dense dates x codes table of simple daily returns.
// Rows follow Dates (ascending), columns follow Codes.
type ReturnMatrix struct {
	Dates []time.Time
	Codes []string
	Data  *mat.Dense
}

// NewReturnMatrix builds a matrix from row-major values. rows[t][i] is the return of Codes[i] at Dates[t].
func NewReturnMatrix(dates []time.Time, codes []string, rows [][]float64) (*ReturnMatrix, error) {
	if len(rows) != len(dates) {
		return nil, fmt.Errorf("got %d rows for %d dates", len(rows), len(dates))
	}

	if len(rows) == 0 || len(codes) == 0 {
		return &ReturnMatrix{Dates: dates, Codes: codes}, nil
	}

	data := make([]float64, 0, len(rows)*len(codes))
	for t, row := range rows {
		if len(row) != len(codes) {
			return nil, fmt.Errorf("row %d has %d columns, expecting %d", t, len(row), len(codes))
		}
		data = append(data, row...)
	}

	return &ReturnMatrix{
		Dates: dates,
		Codes: codes,
		Data:  mat.NewDense(len(rows), len(codes), data),
	}, nil
}

// Dims returns the number of dates and the number of codes.
func (m *ReturnMatrix) Dims() (int, int) {
	if m == nil || m.Data == nil {
		return 0, 0
	}
	return m.Data.Dims()
}

// Column returns a copy of the return series of the i-th code.
func (m *ReturnMatrix) Column(i int) []float64 {
	t, _ := m.Dims()
	col := make([]float64, t)
	mat.Col(col, i, m.Data)
	return col
}

// IndexOf returns the column index of code, or -1.
func (m *ReturnMatrix) IndexOf(code string) int {
	for i, c := range m.Codes {
		if c == code {
			return i
		}
	}
	return -1
}

// Validate checks that every cell is finite.
func (m *ReturnMatrix) Validate() error {
	t, n := m.Dims()
	for r := 0; r < t; r++ {
		for c := 0; c < n; c++ {
			if v := m.Data.At(r, c); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s at %s", ErrNonFinite, m.Codes[c], m.Dates[r].Format(DateLayout))
			}
		}
	}
	return nil
}
