package main

import (
	"log/slog"

	"github.com/san-kum/linsolve/internal/analysis"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/trace"
)

// progress logs a Jacobi solve as it runs and keeps its convergence metrics.
type progress struct {
	*analysis.Collector
	logger *slog.Logger
}

func newProgress(logger *slog.Logger) *progress {
	return &progress{
		Collector: analysis.NewCollector(analysis.DefaultMetrics()...),
		logger:    logger,
	}
}

func (p *progress) OnPhase(ph jacobi.Phase) {
	p.Collector.OnPhase(ph)
	p.logger.Debug("jacobi phase", "phase", ph.String())
}

func (p *progress) OnIteration(it trace.Iteration) {
	p.Collector.OnIteration(it)
	p.logger.Debug("jacobi sweep", "iteration", it.Index, "max_error", it.MaxError, "converged", it.Converged)
}

// summary logs the phases walked and the final metric values.
func (p *progress) summary() {
	phases := p.Phases()
	if len(phases) == 0 {
		return
	}
	attrs := []any{"phases", len(phases), "final_phase", phases[len(phases)-1].String()}
	for name, v := range p.Values() {
		attrs = append(attrs, name, v)
	}
	p.logger.Debug("jacobi progress", attrs...)
}
