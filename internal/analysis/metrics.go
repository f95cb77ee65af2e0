package analysis

import (
	"math"

	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/trace"
)

type Metric interface {
	Name() string
	Observe(it trace.Iteration)
	Value() float64
	Reset()
}

// ContractionRate is the geometric mean of successive max-error ratios
// e_k / e_{k-1}. Values below 1 indicate convergence.
type ContractionRate struct {
	prev   float64
	logSum float64
	ratios int
	seen   int
}

func NewContractionRate() *ContractionRate { return &ContractionRate{} }

func (c *ContractionRate) Name() string { return "contraction_rate" }

func (c *ContractionRate) Observe(it trace.Iteration) {
	if c.seen > 0 && c.prev > 0 && it.MaxError > 0 {
		c.logSum += math.Log(it.MaxError / c.prev)
		c.ratios++
	}
	c.prev = it.MaxError
	c.seen++
}

func (c *ContractionRate) Value() float64 {
	if c.ratios == 0 {
		return 0
	}
	return math.Exp(c.logSum / float64(c.ratios))
}

func (c *ContractionRate) Reset() { *c = ContractionRate{} }

// FinalError is the max error of the last observed sweep.
type FinalError struct {
	last float64
}

func NewFinalError() *FinalError { return &FinalError{} }

func (f *FinalError) Name() string               { return "final_error" }
func (f *FinalError) Observe(it trace.Iteration) { f.last = it.MaxError }
func (f *FinalError) Value() float64             { return f.last }
func (f *FinalError) Reset()                     { f.last = 0 }

// Sweeps counts observed iterations.
type Sweeps struct {
	n int
}

func NewSweeps() *Sweeps { return &Sweeps{} }

func (s *Sweeps) Name() string            { return "sweeps" }
func (s *Sweeps) Observe(trace.Iteration) { s.n++ }
func (s *Sweeps) Value() float64          { return float64(s.n) }
func (s *Sweeps) Reset()                  { s.n = 0 }

func DefaultMetrics() []Metric {
	return []Metric{NewContractionRate(), NewFinalError(), NewSweeps()}
}

// Collector feeds every sweep of a running solve to its metrics.
type Collector struct {
	metrics []Metric
	phases  []jacobi.Phase
}

var _ jacobi.Observer = (*Collector)(nil)

func NewCollector(metrics ...Metric) *Collector {
	for _, m := range metrics {
		m.Reset()
	}
	return &Collector{metrics: metrics}
}

func (c *Collector) OnPhase(p jacobi.Phase) { c.phases = append(c.phases, p) }

func (c *Collector) OnIteration(it trace.Iteration) {
	for _, m := range c.metrics {
		m.Observe(it)
	}
}

// Phases returns the phases seen so far, in order.
func (c *Collector) Phases() []jacobi.Phase {
	out := make([]jacobi.Phase, len(c.phases))
	copy(out, c.phases)
	return out
}

// Values returns every metric's current value keyed by name.
func (c *Collector) Values() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
