package analysis

import (
	"math"

	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

// Residual returns ‖AX − B‖∞.
func Residual(sys linalg.System, x linalg.Vector) (float64, error) {
	ax, err := linalg.MulVec(sys.Coefficients, x)
	if err != nil {
		return 0, err
	}
	if len(ax) != len(sys.Constants) {
		return 0, linalg.ErrDimensionMismatch
	}
	return linalg.MaxAbsDiff(ax, sys.Constants), nil
}

// Summarize computes the metrics stored alongside a run. Failed results
// produce an empty map.
func Summarize(sys linalg.System, res trace.Result) map[string]float64 {
	out := make(map[string]float64)
	if !res.Success {
		return out
	}

	if r, err := Residual(sys, res.Solution); err == nil && !math.IsNaN(r) && !math.IsInf(r, 0) {
		out["residual"] = r
	}
	if res.Determinant != nil {
		out["determinant"] = *res.Determinant
	}
	if res.Method == trace.MethodJacobi {
		c := NewCollector(DefaultMetrics()...)
		for _, it := range res.Iterations() {
			c.OnIteration(it)
		}
		for name, v := range c.Values() {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				out[name] = v
			}
		}
	}
	return out
}
