package trace

import (
	"github.com/san-kum/linsolve/internal/linalg"
)

// Method names a solution strategy.
type Method string

const (
	MethodDirect Method = "direct"
	MethodJacobi Method = "jacobi"
)

// Step describes one stage of a computation. Only Title and Description are
// always set.
type Step struct {
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	Matrix               linalg.Matrix `json:"matrix,omitempty"`
	Constants            linalg.Vector `json:"constants,omitempty"`
	Calculation          string        `json:"calculation,omitempty"`
	Result               *Value        `json:"result,omitempty"`
	Solution             linalg.Vector `json:"solution,omitempty"`
	Equations            []string      `json:"equations,omitempty"`
	InitialGuess         linalg.Vector `json:"initialGuess,omitempty"`
	Iterations           []Iteration   `json:"iterations,omitempty"`
	IterationCount       *int          `json:"iterationCount,omitempty"`
	Tolerance            *float64      `json:"tolerance,omitempty"`
	Converged            *bool         `json:"converged,omitempty"`
	IsDiagonallyDominant *bool         `json:"isDiagonallyDominant,omitempty"`
	Explanation          string        `json:"explanation,omitempty"`
}

// Iteration records one Jacobi sweep.
type Iteration struct {
	Index        int           `json:"iteration"`
	OldValues    linalg.Vector `json:"oldValues"`
	NewValues    linalg.Vector `json:"newValues"`
	Calculations []string      `json:"calculations"`
	Errors       linalg.Vector `json:"errors"`
	MaxError     float64       `json:"maxError"`
	Converged    bool          `json:"converged"`
}

// Result is the uniform outcome of a solve. Failures are reported through
// Success and Error, never as a Go error, and Steps keeps everything computed
// before the failure.
type Result struct {
	Method   Method        `json:"method"`
	Success  bool          `json:"success"`
	Solution linalg.Vector `json:"solution,omitempty"`
	Steps    []Step        `json:"steps"`
	Error    string        `json:"error,omitempty"`

	// direct method
	Determinant *float64      `json:"determinant,omitempty"`
	Inverse     linalg.Matrix `json:"inverse,omitempty"`

	// jacobi method
	Converged            *bool    `json:"converged,omitempty"`
	IterationCount       *int     `json:"iterations,omitempty"`
	Tolerance            *float64 `json:"tolerance,omitempty"`
	IsDiagonallyDominant *bool    `json:"isDiagonallyDominant,omitempty"`
}

// Failed builds an unsuccessful result that keeps the partial trace.
func Failed(method Method, msg string, steps []Step) Result {
	if steps == nil {
		steps = []Step{}
	}
	return Result{Method: method, Success: false, Error: msg, Steps: steps}
}

// Iterations returns the iteration records carried by the result's steps, in
// order.
func (r Result) Iterations() []Iteration {
	var out []Iteration
	for _, s := range r.Steps {
		out = append(out, s.Iterations...)
	}
	return out
}

// MaxErrors returns the max absolute error of every iteration, in order.
func (r Result) MaxErrors() []float64 {
	its := r.Iterations()
	errs := make([]float64, len(its))
	for i, it := range its {
		errs[i] = it.MaxError
	}
	return errs
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
