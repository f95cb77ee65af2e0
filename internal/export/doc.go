// Package export writes solve results to files outside the run store: a
// JSON document of the full trace and a convergence chart rendered with
// gonum/plot.
package export
