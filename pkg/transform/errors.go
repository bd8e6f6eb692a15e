package transform

import "github.com/pkg/errors"

var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
	// ErrNotSquare is returned by determinant/inverse on non-square matrices
	ErrNotSquare = errors.New("matrix is not square")
	// ErrSingular is returned when inverting a matrix whose determinant is ~0
	ErrSingular = errors.New("matrix is not invertible")
	// ErrOutOfBounds is returned for row/column indices outside the matrix
	ErrOutOfBounds = errors.New("matrix index out of bounds")
	// ErrRaggedRows is returned when constructing from rows or columns of unequal length
	ErrRaggedRows = errors.New("inconsistent row or column lengths")
	// ErrNotAffine is returned when a matrix is not 4x4
	ErrNotAffine = errors.New("matrix is not 4x4")
)
