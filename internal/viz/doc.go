// Package viz renders solve traces in the terminal.
//
//   - [RenderResult]: lipgloss rendering of every step of a trace
//   - [ConvergenceChart]: asciigraph chart of the max error per sweep
//   - [Browser]: Bubble Tea program that pages through the steps
//
// # Key Bindings
//
//	h/l, ←/→  - previous/next step
//	j/k, ↑/↓  - scroll iterations of the current step
//	g         - toggle the convergence chart
//	t         - cycle color themes
//	q         - quit
package viz
