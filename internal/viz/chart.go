package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	chartHeight = 10
	chartWidth  = 60
)

// ConvergenceChart plots log10 of the max error per sweep. It returns an
// empty string when there is nothing to plot.
func ConvergenceChart(maxErrors []float64, caption string) string {
	if len(maxErrors) == 0 {
		return ""
	}

	data := make([]float64, len(maxErrors))
	for i, e := range maxErrors {
		data[i] = math.Log10(math.Max(math.Abs(e), 1e-16))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption+" (log10 max error)"),
	)
}
