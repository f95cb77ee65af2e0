package jacobi

import (
	"fmt"
	"math"

	"github.com/san-kum/linsolve/internal/linalg"
)

const (
	MsgEmpty          = "Coefficient matrix must not be empty"
	MsgNotSquare      = "Coefficient matrix must be square"
	MsgLengthMismatch = "Constants vector length must match matrix size"
)

// Validation is the outcome of Validate. IsDiagonallyDominant is only set on
// success and is advisory.
type Validation struct {
	Valid                bool   `json:"valid"`
	Error                string `json:"error,omitempty"`
	IsDiagonallyDominant *bool  `json:"isDiagonallyDominant,omitempty"`
}

// Validate checks the Jacobi preconditions in order and stops at the first
// failure: square matrix, matching constants length, and |a_ii| ≥ Epsilon.
func Validate(a linalg.Matrix, b linalg.Vector) Validation {
	n := len(a)
	if n == 0 {
		return Validation{Error: MsgEmpty}
	}
	if !a.IsSquare() {
		return Validation{Error: MsgNotSquare}
	}
	if len(b) != n {
		return Validation{Error: MsgLengthMismatch}
	}
	for i := 0; i < n; i++ {
		if math.Abs(a[i][i]) < linalg.Epsilon {
			return Validation{Error: zeroDiagonalMessage(i)}
		}
	}

	dominant := IsDiagonallyDominant(a)
	return Validation{Valid: true, IsDiagonallyDominant: &dominant}
}

func zeroDiagonalMessage(i int) string {
	return fmt.Sprintf("Diagonal element at position (%d, %d) is zero or very small. Jacobi method requires non-zero diagonal elements.", i+1, i+1)
}

// IsDiagonallyDominant reports strict row dominance: |a_ii| > Σ_{j≠i} |a_ij|
// for every row. A matrix that is not square is never dominant.
func IsDiagonallyDominant(a linalg.Matrix) bool {
	if !a.IsSquare() {
		return false
	}
	for i, row := range a {
		off := 0.0
		for j, v := range row {
			if j != i {
				off += math.Abs(v)
			}
		}
		if math.Abs(row[i]) <= off {
			return false
		}
	}
	return true
}
