package linalg

import "errors"

// Epsilon is the singularity threshold: a determinant (or diagonal entry)
// whose magnitude is below it is treated as zero.
const Epsilon = 1e-10

var (
	// ErrDimension indicates a matrix that is not square of a supported size.
	ErrDimension = errors.New("linalg: matrix must be square 2x2 or 3x3")

	// ErrDimensionMismatch indicates operands whose shapes cannot be combined.
	ErrDimensionMismatch = errors.New("linalg: matrix dimensions are incompatible")

	// ErrSingular indicates a matrix with |det| < Epsilon.
	ErrSingular = errors.New("linalg: matrix is singular")
)
