package solver

import (
	"fmt"

	"github.com/san-kum/linsolve/internal/direct"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

// SolveDirect solves the system with the inverse-matrix method.
func SolveDirect(coefficients linalg.Matrix, constants linalg.Vector) (res trace.Result) {
	defer recoverInto(&res, trace.MethodDirect)
	return direct.Solve(coefficients, constants)
}

// SolveJacobi runs Jacobi relaxation without validating the input first.
func SolveJacobi(coefficients linalg.Matrix, constants linalg.Vector, tolerance float64, maxIterations int) trace.Result {
	return SolveJacobiObserved(coefficients, constants, tolerance, maxIterations, nil)
}

// SolveJacobiObserved is SolveJacobi with every phase transition and sweep
// reported to obs. A nil obs is allowed.
func SolveJacobiObserved(coefficients linalg.Matrix, constants linalg.Vector, tolerance float64, maxIterations int, obs jacobi.Observer) (res trace.Result) {
	defer recoverInto(&res, trace.MethodJacobi)
	opts := jacobi.Options{Tolerance: tolerance, MaxIterations: maxIterations}
	return jacobi.SolveObserved(coefficients, constants, opts, obs)
}

// ValidateJacobiInput checks the Jacobi preconditions.
func ValidateJacobiInput(coefficients linalg.Matrix, constants linalg.Vector) jacobi.Validation {
	return jacobi.Validate(coefficients, constants)
}

// CheckDiagonalDominance reports strict row diagonal dominance.
func CheckDiagonalDominance(coefficients linalg.Matrix) bool {
	return jacobi.IsDiagonallyDominant(coefficients)
}

// recoverInto folds a panic raised by unrepresentable input, such as ragged
// rows handed to the Jacobi solver, into a failed result.
func recoverInto(res *trace.Result, method trace.Method) {
	if r := recover(); r != nil {
		*res = trace.Failed(method, fmt.Sprintf("invalid input: %v", r), nil)
	}
}
