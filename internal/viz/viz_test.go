package viz

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/linsolve/internal/direct"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/trace"
)

var (
	textbookA = linalg.Matrix{{2, 3}, {1, -1}}
	textbookB = linalg.Vector{7, 1}
	dominantA = linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}}
	dominantB = linalg.Vector{15, 10, 10}
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderDirect(t *testing.T) {
	r := NewRenderer(ThemeMinimal, trace.DefaultPrecision)
	out := r.Result(direct.Solve(textbookA, textbookB))

	for _, want := range []string{
		"DIRECT METHOD",
		"Step 1: System in Matrix Form",
		"det = (2)(-1) - (3)(1) = -5",
		"x1 = 2.000000",
		"x2 = 1.000000",
		"✓ solved",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderFailure(t *testing.T) {
	r := NewRenderer(ThemeMinimal, trace.DefaultPrecision)
	out := r.Result(direct.Solve(linalg.Matrix{{1, 2}, {2, 4}}, linalg.Vector{1, 2}))
	assert.Contains(t, out, direct.MsgSingular)
	assert.NotContains(t, out, "✓ solved")
}

func TestRenderJacobi(t *testing.T) {
	r := NewRenderer(ThemeOcean, 4)
	res := jacobi.Solve(dominantA, dominantB, jacobi.DefaultOptions())
	out := r.Result(res)

	assert.Contains(t, out, "JACOBI METHOD")
	assert.Contains(t, out, "Iteration 1")
	assert.Contains(t, out, "x1^(1) = (15 +1*0.000000 +0*0.000000) / 4 = 3.750000")
	assert.Contains(t, out, "diagonally dominant: true")
}

func TestRenderValidation(t *testing.T) {
	r := NewRenderer(ThemeMinimal, trace.DefaultPrecision)

	ok := r.Validation(jacobi.Validate(linalg.Matrix{{1, 2}, {3, 1}}, linalg.Vector{1, 1}))
	assert.Contains(t, ok, "✓ valid")
	assert.Contains(t, ok, "convergence is not guaranteed")

	bad := r.Validation(jacobi.Validate(linalg.Matrix{{0, 1}, {1, 1}}, linalg.Vector{1, 1}))
	assert.Contains(t, bad, "position (1, 1)")
}

func TestRenderComparison(t *testing.T) {
	r := NewRenderer(ThemeMinimal, trace.DefaultPrecision)
	c, err := solver.Compare(context.Background(), linalg.System{Coefficients: dominantA, Constants: dominantB}, 1e-10, 200)
	require.NoError(t, err)

	out := r.Comparison(c)
	assert.Contains(t, out, "max difference")
	assert.Contains(t, out, "methods agree")
}

func TestMatrixBlockAugmented(t *testing.T) {
	r := NewRenderer(ThemeMinimal, 0)
	out := r.matrixBlock(textbookA, textbookB)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "|")
	assert.Contains(t, lines[0], "7")
}

func TestConvergenceChart(t *testing.T) {
	assert.Empty(t, ConvergenceChart(nil, "empty"))

	chart := ConvergenceChart([]float64{1, 0.1, 0.01, 0}, "jacobi")
	assert.Contains(t, chart, "jacobi (log10 max error)")
}

func TestSparkline(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	assert.Equal(t, "─────", Sparkline(s, nil, 5))

	line := Sparkline(s, []float64{1, 0.1, 0.01}, 10)
	assert.Contains(t, line, "█")
	assert.Contains(t, line, "▁")
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "ocean", GetTheme("ocean").Name)
	assert.Equal(t, ThemeCyberpunk.Name, GetTheme("missing").Name)
	assert.Equal(t, []string{"cyberpunk", "minimal", "ocean"}, ThemeNames())
	assert.Equal(t, ThemeCyberpunk.Name, nextTheme(ThemeOcean).Name)
}

func TestBrowserNavigation(t *testing.T) {
	res := jacobi.Solve(dominantA, dominantB, jacobi.DefaultOptions())
	var m tea.Model = NewBrowser(res, ThemeMinimal, trace.DefaultPrecision, 100)

	m, _ = m.Update(key("h"))
	step, _ := m.(Browser).Position()
	assert.Equal(t, 0, step)

	for range len(res.Steps) + 2 {
		m, _ = m.Update(key("l"))
	}
	step, _ = m.(Browser).Position()
	assert.Equal(t, len(res.Steps)-1, step)

	m, _ = m.Update(key("h"))
	step, _ = m.(Browser).Position()
	assert.Equal(t, 3, step, "iterations step")

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("k"))
	_, offset := m.(Browser).Position()
	assert.Equal(t, 1, offset)

	view := m.View()
	assert.Contains(t, view, "Iteration 2")
	assert.NotContains(t, view, "x1^(1) =")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserEmptyTrace(t *testing.T) {
	res := trace.Failed(trace.MethodJacobi, jacobi.MsgNotSquare, nil)
	view := NewBrowser(res, ThemeMinimal, trace.DefaultPrecision, 0).View()
	assert.Contains(t, view, jacobi.MsgNotSquare)
}
