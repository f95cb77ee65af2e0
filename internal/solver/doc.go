// Package solver is the entry point of the engine for outer layers. It
// exposes the four operations the presentation layer consumes
// ([SolveDirect], [SolveJacobi], [ValidateJacobiInput],
// [CheckDiagonalDominance]), a [Registry] that dispatches a [Request] by
// method name, and helpers that run many solves concurrently ([Batch]) or
// both methods side by side ([Compare]).
//
// # Thread Safety
//
// Every function here is safe for concurrent use. The engine holds no shared
// state and never writes to caller-owned matrices or vectors.
package solver
