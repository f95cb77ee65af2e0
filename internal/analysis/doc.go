// Package analysis derives diagnostics from solver results: the residual
// ‖AX − B‖∞ of a solution and per-sweep metrics of a Jacobi run such as the
// observed contraction rate.
//
// Metrics follow an observe/value/reset cycle and can be attached to a live
// solve through [Collector], which satisfies jacobi.Observer.
package analysis
