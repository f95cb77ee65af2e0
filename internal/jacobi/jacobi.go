package jacobi

import (
	"fmt"
	"math"

	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Options bounds a solve. MaxIterations ≤ 0 runs no sweeps.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

// Solve runs Jacobi relaxation from the zero vector until the max absolute
// change of a sweep drops below opts.Tolerance or opts.MaxIterations sweeps
// have run. a and b are not modified.
func Solve(a linalg.Matrix, b linalg.Vector, opts Options) trace.Result {
	return SolveObserved(a, b, opts, nil)
}

// SolveObserved is Solve with obs notified of every phase and sweep. obs may
// be nil.
func SolveObserved(a linalg.Matrix, b linalg.Vector, opts Options, obs Observer) trace.Result {
	r := &run{a: a.Clone(), b: b.Clone(), opts: opts, obs: obs}
	r.notify()
	for !r.phase.Terminal() {
		r.advance()
	}
	return r.result()
}

type run struct {
	a    linalg.Matrix
	b    linalg.Vector
	opts Options
	obs  Observer

	phase      Phase
	log        trace.Log
	dominant   bool
	x          linalg.Vector
	iterations []trace.Iteration
}

func (r *run) transition(p Phase) {
	r.phase = p
	r.notify()
}

func (r *run) notify() {
	if r.obs != nil {
		r.obs.OnPhase(r.phase)
	}
}

func (r *run) advance() {
	switch r.phase {
	case PhaseSetup:
		r.setup()
		r.transition(PhaseRewriteEquations)
	case PhaseRewriteEquations:
		r.rewrite()
		r.transition(PhaseInitialGuess)
	case PhaseInitialGuess:
		r.initialGuess()
		if r.opts.MaxIterations <= 0 {
			r.transition(PhaseMaxIterationsReached)
			return
		}
		r.transition(PhaseIterating)
	case PhaseIterating:
		it := r.sweep()
		switch {
		case it.Converged:
			r.transition(PhaseConverged)
		case len(r.iterations) >= r.opts.MaxIterations:
			r.transition(PhaseMaxIterationsReached)
		}
	}
}

func (r *run) setup() {
	r.dominant = IsDiagonallyDominant(r.a)
	explanation := "Warning: The matrix is not diagonally dominant. Convergence is not guaranteed."
	if r.dominant {
		explanation = "The matrix is diagonally dominant, so the Jacobi method will converge."
	}
	r.log = r.log.With(trace.Step{
		Title:                "Step 1: System Setup and Diagonal Dominance Check",
		Description:          "We check if the coefficient matrix is diagonally dominant to ensure convergence.",
		Matrix:               r.a.Clone(),
		Constants:            r.b.Clone(),
		IsDiagonallyDominant: trace.Bool(r.dominant),
		Explanation:          explanation,
	})
}

func (r *run) rewrite() {
	eqs := make([]string, len(r.a))
	for i, row := range r.a {
		eqs[i] = trace.UpdateEquation(row, r.b[i], i)
	}
	r.log = r.log.With(trace.Step{
		Title:       "Step 2: Rewrite Equations for Iteration",
		Description: "We solve each equation for its diagonal variable.",
		Equations:   eqs,
		Explanation: "Each equation is rearranged to express one variable in terms of the others.",
	})
}

func (r *run) initialGuess() {
	r.x = make(linalg.Vector, len(r.a))
	r.log = r.log.With(trace.Step{
		Title:        "Step 3: Initial Guess",
		Description:  "We start with an initial guess for all variables.",
		InitialGuess: r.x.Clone(),
		Explanation:  "A common choice is to set all variables to 0 initially.",
	})
}

// sweep computes every new component from the previous full iterate.
func (r *run) sweep() trace.Iteration {
	k := len(r.iterations) + 1
	n := len(r.a)
	xNew := make(linalg.Vector, n)
	calcs := make([]string, n)

	for i, row := range r.a {
		sum := r.b[i]
		for j, aij := range row {
			if j != i {
				sum -= aij * r.x[j]
			}
		}
		xNew[i] = sum / row[i]
		calcs[i] = trace.IterationCalc(row, r.b[i], i, k, r.x, xNew[i])
	}

	errs := make(linalg.Vector, n)
	maxErr := 0.0
	for i := range xNew {
		errs[i] = math.Abs(xNew[i] - r.x[i])
		maxErr = math.Max(maxErr, errs[i])
	}

	it := trace.Iteration{
		Index:        k,
		OldValues:    r.x.Clone(),
		NewValues:    xNew.Clone(),
		Calculations: calcs,
		Errors:       errs,
		MaxError:     maxErr,
		Converged:    maxErr < r.opts.Tolerance,
	}
	r.iterations = append(r.iterations, it)
	r.x = xNew
	if r.obs != nil {
		r.obs.OnIteration(it)
	}
	return it
}

func (r *run) result() trace.Result {
	converged := r.phase == PhaseConverged
	count := len(r.iterations)

	log := r.log.With(trace.Step{
		Title:       "Step 4: Iterations",
		Description: "We iterate until convergence or maximum iterations reached.",
		Iterations:  r.iterations,
		Explanation: "In each iteration, we use the previous values to calculate new values for all variables simultaneously.",
	})

	final := trace.Step{
		Solution:       r.x.Clone(),
		Converged:      trace.Bool(converged),
		IterationCount: trace.Int(count),
		Tolerance:      trace.Float(r.opts.Tolerance),
	}
	if converged {
		final.Title = "Step 5: Convergence Achieved"
		final.Description = fmt.Sprintf("Solution converged after %d iterations with tolerance %g.", count, r.opts.Tolerance)
		final.Explanation = "The solution has converged to the desired accuracy."
	} else {
		final.Title = "Step 5: Maximum Iterations Reached"
		final.Description = fmt.Sprintf("Maximum iterations (%d) reached. Solution may not be accurate.", r.opts.MaxIterations)
		final.Explanation = "Consider increasing the maximum iterations or checking if the system is suitable for Jacobi iteration."
	}
	log = log.With(final)

	return trace.Result{
		Method:               trace.MethodJacobi,
		Success:              true,
		Solution:             r.x.Clone(),
		Steps:                log.Steps(),
		Converged:            trace.Bool(converged),
		IterationCount:       trace.Int(count),
		Tolerance:            trace.Float(r.opts.Tolerance),
		IsDiagonallyDominant: trace.Bool(r.dominant),
	}
}
