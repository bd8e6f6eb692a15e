package transform

import (
	"fmt"
	"strings"

	"github.com/df07/go-crayfish/pkg/core"
	"github.com/pkg/errors"
)

// Matrix is a dense row-major matrix of arbitrary shape.
// Operations return new matrices; only Set mutates the receiver.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix creates a zero-filled rows x cols matrix
func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Identity returns the n x n identity matrix
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from a slice of rows
func FromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	width := len(rows[0])
	m := NewMatrix(len(rows), width)
	for r, row := range rows {
		if len(row) != width {
			return Matrix{}, errors.Wrapf(ErrRaggedRows, "row %d has %d entries, expected %d", r, len(row), width)
		}
		copy(m.data[r*width:], row)
	}
	return m, nil
}

// FromCols builds a matrix from a slice of columns
func FromCols(cols [][]float64) (Matrix, error) {
	m, err := FromRows(cols)
	if err != nil {
		return Matrix{}, err
	}
	return m.Transpose(), nil
}

// Rows returns the number of rows
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m Matrix) Cols() int { return m.cols }

// At returns the element at (r, c). Indices must be in range.
func (m Matrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

// Set writes the element at (r, c). Indices must be in range.
func (m *Matrix) Set(r, c int, v float64) {
	m.data[r*m.cols+c] = v
}

// Equal compares two matrices element-wise within core.Epsilon
func (m Matrix) Equal(other Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if !core.ApproxEqual(m.data[i], other.data[i]) {
			return false
		}
	}
	return true
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	t := NewMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.data[c*m.rows+r] = m.data[r*m.cols+c]
		}
	}
	return t
}

// Mul returns the matrix product m · other
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.cols != other.rows {
		return Matrix{}, errors.Wrapf(ErrDimensionMismatch, "cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols)
	}
	out := NewMatrix(m.rows, other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.data[r*m.cols+k] * other.data[k*other.cols+c]
			}
			out.data[r*out.cols+c] = sum
		}
	}
	return out, nil
}

// mulTuple multiplies a 4x4 matrix by a homogeneous column tuple
func (m Matrix) mulTuple(t [4]float64) ([4]float64, error) {
	var out [4]float64
	if m.rows != 4 || m.cols != 4 {
		return out, errors.Wrapf(ErrDimensionMismatch, "cannot apply %dx%d matrix to a 4-tuple", m.rows, m.cols)
	}
	for r := 0; r < 4; r++ {
		out[r] = m.data[r*4]*t[0] + m.data[r*4+1]*t[1] + m.data[r*4+2]*t[2] + m.data[r*4+3]*t[3]
	}
	return out, nil
}

// MulPoint transforms a point (w = 1, so translation applies)
func (m Matrix) MulPoint(p core.Point) (core.Point, error) {
	t, err := m.mulTuple(p.Homogeneous())
	if err != nil {
		return core.Point{}, err
	}
	return core.NewPoint(t[0], t[1], t[2]), nil
}

// MulVector transforms a vector (w = 0, so translation is ignored)
func (m Matrix) MulVector(v core.Vector) (core.Vector, error) {
	t, err := m.mulTuple(v.Homogeneous())
	if err != nil {
		return core.Vector{}, err
	}
	return core.NewVector(t[0], t[1], t[2]), nil
}

// Submatrix returns a copy of m with the given row and column removed
func (m Matrix) Submatrix(row, col int) (Matrix, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return Matrix{}, errors.Wrapf(ErrOutOfBounds, "submatrix (%d, %d) of %dx%d", row, col, m.rows, m.cols)
	}
	out := NewMatrix(m.rows-1, m.cols-1)
	i := 0
	for r := 0; r < m.rows; r++ {
		if r == row {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if c == col {
				continue
			}
			out.data[i] = m.data[r*m.cols+c]
			i++
		}
	}
	return out, nil
}

// Determinant computes the determinant by cofactor expansion along row 0
func (m Matrix) Determinant() (float64, error) {
	if m.rows != m.cols {
		return 0, errors.Wrapf(ErrNotSquare, "determinant of %dx%d", m.rows, m.cols)
	}
	switch m.rows {
	case 0:
		return 0, errors.Wrap(ErrNotSquare, "determinant of empty matrix")
	case 1:
		return m.data[0], nil
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2], nil
	}

	var det float64
	for c := 0; c < m.cols; c++ {
		cof, err := m.Cofactor(0, c)
		if err != nil {
			return 0, err
		}
		det += m.data[c] * cof
	}
	return det, nil
}

// Minor returns the determinant of Submatrix(row, col)
func (m Matrix) Minor(row, col int) (float64, error) {
	sub, err := m.Submatrix(row, col)
	if err != nil {
		return 0, err
	}
	return sub.Determinant()
}

// Cofactor returns the signed minor at (row, col)
func (m Matrix) Cofactor(row, col int) (float64, error) {
	minor, err := m.Minor(row, col)
	if err != nil {
		return 0, err
	}
	if (row+col)%2 == 1 {
		return -minor, nil
	}
	return minor, nil
}

// Invertible reports whether m is square with a determinant not ~0
func (m Matrix) Invertible() bool {
	det, err := m.Determinant()
	return err == nil && !core.ApproxEqual(det, 0)
}

// Inverse returns m⁻¹ via the adjugate: inv[c][r] = cofactor(r, c) / det
func (m Matrix) Inverse() (Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return Matrix{}, err
	}
	if core.ApproxEqual(det, 0) {
		return Matrix{}, errors.Wrapf(ErrSingular, "determinant %g", det)
	}

	out := NewMatrix(m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			cof, err := m.Cofactor(r, c)
			if err != nil {
				return Matrix{}, err
			}
			out.data[c*m.rows+r] = cof / det
		}
	}
	return out, nil
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteString("|")
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(&sb, " %8.5f |", m.At(r, c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
