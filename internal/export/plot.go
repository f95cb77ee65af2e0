package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	ErrNoIterations = errors.New("export: result has no iterations to plot")
	ErrFormat       = errors.New("export: unsupported image format")
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// errorFloor keeps exact zeros plottable on a log axis.
const errorFloor = 1e-16

// ConvergencePlot builds a max-error-per-sweep chart. Errors are drawn on a
// log scale when every value is positive.
func ConvergencePlot(title string, maxErrors []float64) (*plot.Plot, error) {
	if len(maxErrors) == 0 {
		return nil, ErrNoIterations
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "max error"

	pts := make(plotter.XYs, len(maxErrors))
	for i, e := range maxErrors {
		pts[i].X = float64(i + 1)
		pts[i].Y = e
	}

	if logScalable(maxErrors) {
		for i := range pts {
			pts[i].Y = max(pts[i].Y, errorFloor)
		}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("build convergence line: %w", err)
	}
	p.Add(plotter.NewGrid(), line)
	p.Legend.Add("max error", line)
	return p, nil
}

func logScalable(values []float64) bool {
	positive := false
	for _, v := range values {
		if v < 0 {
			return false
		}
		if v > 0 {
			positive = true
		}
	}
	return positive
}

// SaveConvergencePlot renders the chart to path. The format follows the
// file extension (.png or .svg).
func SaveConvergencePlot(path, title string, maxErrors []float64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".svg" {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	p, err := ConvergencePlot(title, maxErrors)
	if err != nil {
		return err
	}

	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
