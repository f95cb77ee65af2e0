// Package direct solves AX = B by the inverse-matrix method, X = A⁻¹B, for
// 2×2 and 3×3 systems, narrating every stage.
package direct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

// ErrUnsupportedSize indicates a system that is not 2×2 or 3×3.
var ErrUnsupportedSize = errors.New("direct: only 2x2 and 3x3 systems are supported")

// User-facing failure messages carried in trace.Result.Error.
const (
	MsgSingular        = "Matrix is singular (determinant is zero)"
	MsgUnsupportedSize = "Only 2x2 and 3x3 systems are supported"
	MsgNotSquare       = "Coefficient matrix must be square"
	MsgLengthMismatch  = "Constants vector length must match matrix size"
)

const determinantExplanation = "The determinant tells us if the matrix has an inverse. If det ≠ 0, the inverse exists."

// Message maps an error from this package or linalg to its user-facing text.
func Message(err error) string {
	switch {
	case errors.Is(err, linalg.ErrSingular):
		return MsgSingular
	case errors.Is(err, ErrUnsupportedSize):
		return MsgUnsupportedSize
	case errors.Is(err, linalg.ErrDimensionMismatch):
		return MsgLengthMismatch
	case errors.Is(err, linalg.ErrDimension):
		return MsgNotSquare
	default:
		return err.Error()
	}
}

// Solve computes X = A⁻¹B. It never panics on malformed shapes and never
// modifies a or b; failures come back as an unsuccessful result holding the
// steps recorded before the failure.
func Solve(a linalg.Matrix, b linalg.Vector) trace.Result {
	a, b = a.Clone(), b.Clone()
	n := len(a)

	log := trace.Log{}.With(trace.Step{
		Title:       "Step 1: System in Matrix Form",
		Description: "We represent the system AX = B where A is the coefficient matrix, X is the variable vector, and B is the constants vector.",
		Matrix:      a.Clone(),
		Constants:   b.Clone(),
		Explanation: "This is the standard matrix representation of a system of linear equations.",
	})

	if err := checkShape(a, b); err != nil {
		return fail(err, log)
	}

	det, err := linalg.Determinant(a)
	if err != nil {
		return fail(err, log)
	}

	step := trace.Step{
		Title:       "Step 2: Calculate Determinant",
		Result:      trace.ScalarValue(det),
		Explanation: determinantExplanation,
	}
	if n == 2 {
		step.Description = "For a 2×2 matrix [[a,b],[c,d]], det = ad - bc"
		step.Calculation = trace.Determinant2Expr(a, det)
	} else {
		step.Description = "For a 3×3 matrix, we use cofactor expansion along the first row"
		step.Calculation = trace.Determinant3Expr(a, det)
	}
	log = log.With(step)

	inv, err := linalg.Inverse(a)
	if err != nil {
		return fail(err, log)
	}
	log = log.With(trace.Step{
		Title:       "Step 3: Calculate Inverse Matrix",
		Description: "We calculate A⁻¹ using the formula A⁻¹ = (1/det(A)) × adj(A)",
		Matrix:      inv.Clone(),
		Explanation: "The inverse matrix allows us to solve for X by computing X = A⁻¹B.",
	})

	col, err := linalg.Multiply(inv, linalg.Column(b))
	if err != nil {
		return fail(err, log)
	}
	x := linalg.Flatten(col)

	log = log.With(trace.Step{
		Title:       "Step 4: Calculate Solution",
		Description: "Multiply A⁻¹ by B to get X = A⁻¹B",
		Calculation: "X = A⁻¹ × B: " + strings.Join(trace.SolutionLines(x, trace.DefaultPrecision), ", "),
		Result:      trace.VectorValue(x),
		Explanation: "This gives us the values of our variables.",
	})

	return trace.Result{
		Method:      trace.MethodDirect,
		Success:     true,
		Solution:    x,
		Steps:       log.Steps(),
		Determinant: trace.Float(det),
		Inverse:     inv,
	}
}

func checkShape(a linalg.Matrix, b linalg.Vector) error {
	n := len(a)
	switch {
	case n == 0:
		return fmt.Errorf("empty system: %w", ErrUnsupportedSize)
	case !a.IsSquare():
		return fmt.Errorf("coefficients %dx%d: %w", n, a.Cols(), linalg.ErrDimension)
	case n != 2 && n != 3:
		return fmt.Errorf("system of size %d: %w", n, ErrUnsupportedSize)
	case len(b) != n:
		return fmt.Errorf("%d constants for %d rows: %w", len(b), n, linalg.ErrDimensionMismatch)
	}
	return nil
}

func fail(err error, log trace.Log) trace.Result {
	return trace.Failed(trace.MethodDirect, Message(err), log.Steps())
}
