package jacobi

import "github.com/san-kum/linsolve/internal/trace"

// Phase is a state of a Jacobi solve.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRewriteEquations
	PhaseInitialGuess
	PhaseIterating
	PhaseConverged
	PhaseMaxIterationsReached
)

var phaseNames = map[Phase]string{
	PhaseSetup:                "setup",
	PhaseRewriteEquations:     "rewrite_equations",
	PhaseInitialGuess:         "initial_guess",
	PhaseIterating:            "iterating",
	PhaseConverged:            "converged",
	PhaseMaxIterationsReached: "max_iterations_reached",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether p ends a solve.
func (p Phase) Terminal() bool {
	return p == PhaseConverged || p == PhaseMaxIterationsReached
}

// Observer receives phase transitions and completed sweeps as a solve runs.
type Observer interface {
	OnPhase(p Phase)
	OnIteration(it trace.Iteration)
}
