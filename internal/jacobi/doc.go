// Package jacobi implements Jacobi relaxation for square linear systems
// together with its input validator and the diagonal-dominance diagnostic.
//
// A solve is an explicit state machine:
//
//	Setup → RewriteEquations → InitialGuess → Iterating → {Converged | MaxIterationsReached}
//
// Exactly one terminal phase is reached and neither is an error: running out
// of iterations is reported through Result.Converged. Inputs are expected to
// have passed [Validate]; [Solve] does not re-check them, and a zero diagonal
// produces non-finite values that are propagated as-is.
//
// # Example
//
//	v := jacobi.Validate(a, b)
//	if !v.Valid {
//		return v.Error
//	}
//	res := jacobi.Solve(a, b, jacobi.DefaultOptions())
package jacobi
