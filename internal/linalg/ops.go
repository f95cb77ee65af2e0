package linalg

import (
	"fmt"
	"math"
)

// Determinant returns det(m) for a 2×2 or 3×3 matrix. The 3×3 case expands
// along the first row using the three 2×2 minors.
func Determinant(m Matrix) (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("determinant of %dx%d: %w", m.Rows(), m.Cols(), ErrDimension)
	}
	switch len(m) {
	case 2:
		return det2(m), nil
	case 3:
		return m[0][0]*det2(Minor(m, 0, 0)) -
			m[0][1]*det2(Minor(m, 0, 1)) +
			m[0][2]*det2(Minor(m, 0, 2)), nil
	default:
		return 0, fmt.Errorf("determinant of %dx%d: %w", len(m), len(m), ErrDimension)
	}
}

func det2(m Matrix) float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inverse returns m⁻¹ for a 2×2 or 3×3 matrix. 2×2 uses swap-and-negate,
// 3×3 the transposed cofactor matrix divided by the determinant.
func Inverse(m Matrix) (Matrix, error) {
	det, err := Determinant(m)
	if err != nil {
		return nil, err
	}
	if math.Abs(det) < Epsilon {
		return nil, fmt.Errorf("inverse (det=%g): %w", det, ErrSingular)
	}

	if len(m) == 2 {
		return Matrix{
			{m[1][1] / det, -m[0][1] / det},
			{-m[1][0] / det, m[0][0] / det},
		}, nil
	}

	adj := Transpose(Cofactors(m))
	for i := range adj {
		for j := range adj[i] {
			adj[i][j] /= det
		}
	}
	return adj, nil
}

// Cofactors returns the signed-minor matrix C[i][j] = (-1)^(i+j)·det(minor(i,j))
// of a 3×3 matrix.
func Cofactors(m Matrix) Matrix {
	c := Zeros(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sign := 1.0
			if (i+j)%2 == 1 {
				sign = -1.0
			}
			c[i][j] = sign * det2(Minor(m, i, j))
		}
	}
	return c
}

// Minor returns m with the given row and column removed.
func Minor(m Matrix, row, col int) Matrix {
	out := make(Matrix, 0, len(m)-1)
	for i, r := range m {
		if i == row {
			continue
		}
		nr := make([]float64, 0, len(r)-1)
		for j, v := range r {
			if j == col {
				continue
			}
			nr = append(nr, v)
		}
		out = append(out, nr)
	}
	return out
}

// Transpose swaps rows and columns of a rectangular matrix.
func Transpose(m Matrix) Matrix {
	rows, cols := m.Rows(), m.Cols()
	t := Zeros(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Multiply returns the product a·b.
func Multiply(a, b Matrix) (Matrix, error) {
	if a.Rows() == 0 || b.Rows() == 0 || !a.IsRectangular() || !b.IsRectangular() {
		return nil, fmt.Errorf("multiply: empty or ragged operand: %w", ErrDimensionMismatch)
	}
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	out := Zeros(a.Rows(), b.Cols())
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			sum := 0.0
			for k := 0; k < a.Cols(); k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// MulVec returns a·x, reshaping x as a column.
func MulVec(a Matrix, x Vector) (Vector, error) {
	p, err := Multiply(a, Column(x))
	if err != nil {
		return nil, err
	}
	return Flatten(p), nil
}
