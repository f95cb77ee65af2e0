// Package trace defines the result contract shared by every solver: the
// ordered, immutable sequence of [Step] values that narrates a solve, the
// per-sweep [Iteration] records of the Jacobi method, and the [Result]
// returned to callers.
//
// Narration strings are derived views. They are produced by the formatting
// helpers in format.go from structured operands and no decision logic reads
// them back.
package trace
