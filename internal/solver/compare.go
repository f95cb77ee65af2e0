package solver

import (
	"context"

	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

// DefaultAgreement is the largest solution difference for which the two
// methods are considered to agree.
const DefaultAgreement = 1e-4

// Comparison holds both methods' results for one system.
type Comparison struct {
	Direct        trace.Result `json:"direct"`
	Jacobi        trace.Result `json:"jacobi"`
	MaxDifference *float64     `json:"maxDifference,omitempty"`
	Agree         bool         `json:"agree"`
}

// Compare solves sys with both methods. MaxDifference is set only when both
// produced a solution.
func (r *Registry) Compare(ctx context.Context, sys linalg.System, tolerance float64, maxIterations int) (Comparison, error) {
	d, err := r.Solve(ctx, Request{Method: trace.MethodDirect, System: sys})
	if err != nil {
		return Comparison{}, err
	}
	j, err := r.Solve(ctx, Request{Method: trace.MethodJacobi, System: sys, Tolerance: tolerance, MaxIterations: maxIterations})
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{Direct: d, Jacobi: j}
	if d.Success && j.Success {
		diff := linalg.MaxAbsDiff(d.Solution, j.Solution)
		c.MaxDifference = &diff
		c.Agree = diff <= DefaultAgreement
	}
	return c, nil
}

// Compare runs both methods through the default registry.
func Compare(ctx context.Context, sys linalg.System, tolerance float64, maxIterations int) (Comparison, error) {
	return defaultRegistry.Compare(ctx, sys, tolerance, maxIterations)
}
