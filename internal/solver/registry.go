package solver

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

// Request describes one solve. Tolerance, MaxIterations and Observer only
// apply to Jacobi; a zero Tolerance selects the default.
type Request struct {
	Method        trace.Method
	System        linalg.System
	Tolerance     float64
	MaxIterations int
	Observer      jacobi.Observer
}

// Func solves a request.
type Func func(ctx context.Context, req Request) trace.Result

type Registry struct {
	methods map[trace.Method]Func
}

func NewRegistry() *Registry {
	r := &Registry{methods: make(map[trace.Method]Func)}

	r.methods[trace.MethodDirect] = func(_ context.Context, req Request) trace.Result {
		return SolveDirect(req.System.Coefficients, req.System.Constants)
	}
	r.methods[trace.MethodJacobi] = func(_ context.Context, req Request) trace.Result {
		a, b := req.System.Coefficients, req.System.Constants
		if v := ValidateJacobiInput(a, b); !v.Valid {
			return trace.Failed(trace.MethodJacobi, v.Error, nil)
		}
		tol := req.Tolerance
		if tol <= 0 {
			tol = jacobi.DefaultTolerance
		}
		return SolveJacobiObserved(a, b, tol, req.MaxIterations, req.Observer)
	}

	return r
}

// Register adds or replaces a method.
func (r *Registry) Register(method trace.Method, fn Func) {
	r.methods[method] = fn
}

// Solve dispatches req to its method. The only error is an unknown method;
// solver failures are reported in the result.
func (r *Registry) Solve(ctx context.Context, req Request) (trace.Result, error) {
	fn, ok := r.methods[req.Method]
	if !ok {
		return trace.Result{}, fmt.Errorf("unknown method: %s", req.Method)
	}
	if err := ctx.Err(); err != nil {
		return trace.Result{}, err
	}
	return fn(ctx, req), nil
}

// ListMethods returns the registered method names, sorted.
func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Solve dispatches req through the default registry.
func Solve(ctx context.Context, req Request) (trace.Result, error) {
	return defaultRegistry.Solve(ctx, req)
}
