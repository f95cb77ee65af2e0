// Package linalg provides the small dense linear-algebra primitives used by
// the solvers: determinant, inverse, transpose, multiplication and minors.
//
// The package targets the 2×2 and 3×3 systems the direct method supports and
// favours closed forms that can be narrated step by step over general
// decompositions:
//
//   - [Determinant]: ad − bc, or first-row cofactor expansion
//   - [Inverse]: swap-and-negate, or the adjugate divided by the determinant
//   - [Multiply], [Transpose], [Minor]: shape-generic helpers
//
// # Errors
//
// Shape violations wrap [ErrDimension] or [ErrDimensionMismatch] and a
// determinant below [Epsilon] wraps [ErrSingular]. Match them with errors.Is.
package linalg
