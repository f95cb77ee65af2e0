package linalg

import "math"

// Matrix is a dense row-major matrix. Rows are outer, columns inner.
type Matrix [][]float64

// Vector is an ordered sequence of reals paired with the rows of a Matrix.
type Vector []float64

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := Zeros(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Zeros returns a rows×cols matrix of zeros.
func Zeros(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// DefaultSystem returns the pattern used for cells a user left unfilled:
// 1 on the diagonal, 0 elsewhere, and 1 for every constant.
func DefaultSystem(n int) (Matrix, Vector) {
	b := make(Vector, n)
	for i := range b {
		b[i] = 1
	}
	return Identity(n), b
}

// Clone returns a deep copy of m. Rows keep their own lengths.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = make([]float64, len(row))
		copy(c[i], row)
	}
	return c
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// IsRectangular reports whether every row has the same length as the first.
func (m Matrix) IsRectangular() bool {
	for _, row := range m {
		if len(row) != m.Cols() {
			return false
		}
	}
	return true
}

// IsSquare reports whether m is non-empty and every row has len(m) entries.
func (m Matrix) IsSquare() bool {
	if len(m) == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// IsFinite reports whether v holds no NaN or Inf.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Column reshapes v into an n×1 matrix.
func Column(v Vector) Matrix {
	m := make(Matrix, len(v))
	for i, x := range v {
		m[i] = []float64{x}
	}
	return m
}

// Flatten returns the first column of m as a vector.
func Flatten(m Matrix) Vector {
	v := make(Vector, len(m))
	for i, row := range m {
		if len(row) > 0 {
			v[i] = row[0]
		}
	}
	return v
}

// MaxAbsDiff returns max_i |a[i] − b[i]| over the common prefix of a and b.
func MaxAbsDiff(a, b Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	maxDiff := 0.0
	for i := 0; i < n; i++ {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff
}
