// Package linalg provides the small dense-matrix helpers the recommendation
// pipeline needs. Everything is float64 and row-major.
package linalg

import "fmt"

// Matrix is a dense row-major matrix with explicit dimensions.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("linalg: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Row returns row i as a slice sharing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// ColumnMean returns the mean of column j.
func (m *Matrix) ColumnMean(j int) float64 {
	if m.Rows == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < m.Rows; i++ {
		sum += m.At(i, j)
	}
	return sum / float64(m.Rows)
}

// SquaredDistance returns the squared Euclidean distance between a and b.
// Both slices must have the same length.
func SquaredDistance(a, b []float64) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}

// MeanOf writes the componentwise mean of the given rows of m into dst and
// reports whether any row was averaged. dst is left untouched when rows is
// empty.
func MeanOf(m *Matrix, rows []int, dst []float64) bool {
	if len(rows) == 0 {
		return false
	}
	for j := range dst {
		dst[j] = 0
	}
	for _, r := range rows {
		row := m.Row(r)
		for j, v := range row {
			dst[j] += v
		}
	}
	n := float64(len(rows))
	for j := range dst {
		dst[j] /= n
	}
	return true
}
