package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/trace"
)

// Renderer turns traces into styled terminal text.
type Renderer struct {
	styles    Styles
	precision int
}

func NewRenderer(theme Theme, precision int) *Renderer {
	if precision < 0 {
		precision = trace.DefaultPrecision
	}
	return &Renderer{styles: NewStyles(theme), precision: precision}
}

func (r *Renderer) Result(res trace.Result) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(strings.ToUpper(string(res.Method))+" METHOD") + "\n\n")

	for i, s := range res.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.Step(s))
	}

	b.WriteString("\n")
	b.WriteString(r.Outcome(res))
	return b.String()
}

// Outcome is the one-paragraph summary printed after the steps.
func (r *Renderer) Outcome(res trace.Result) string {
	var b strings.Builder
	if !res.Success {
		b.WriteString(r.styles.Error.Render("✗ "+res.Error) + "\n")
		return b.String()
	}

	if res.Converged != nil && !*res.Converged {
		b.WriteString(r.styles.Warning.Render("! did not converge") + "\n")
	} else {
		b.WriteString(r.styles.Success.Render("✓ solved") + "\n")
	}
	for _, line := range trace.SolutionLines(res.Solution, r.precision) {
		b.WriteString("  " + r.styles.Value.Render(line) + "\n")
	}
	if res.IterationCount != nil {
		b.WriteString(r.kv("iterations", fmt.Sprint(*res.IterationCount)))
	}
	if res.IsDiagonallyDominant != nil {
		b.WriteString(r.kv("diagonally dominant", fmt.Sprint(*res.IsDiagonallyDominant)))
	}
	return b.String()
}

func (r *Renderer) Step(s trace.Step) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(s.Title) + "\n")
	b.WriteString(r.styles.Muted.Render(s.Description) + "\n")

	if s.Matrix != nil {
		b.WriteString(r.matrixBlock(s.Matrix, s.Constants))
	}
	if s.Calculation != "" {
		b.WriteString("  " + r.styles.Value.Render(s.Calculation) + "\n")
	}
	if s.Result != nil {
		b.WriteString(r.value(*s.Result))
	}
	for _, eq := range s.Equations {
		b.WriteString("  " + r.styles.Value.Render(eq) + "\n")
	}
	if s.InitialGuess != nil {
		b.WriteString(r.kv("initial guess", r.vector(s.InitialGuess)))
	}
	for _, it := range s.Iterations {
		b.WriteString(r.Iteration(it))
	}
	if s.Solution != nil {
		for _, line := range trace.SolutionLines(s.Solution, r.precision) {
			b.WriteString("  " + r.styles.Value.Render(line) + "\n")
		}
	}
	if s.IterationCount != nil {
		b.WriteString(r.kv("iterations", fmt.Sprint(*s.IterationCount)))
	}
	if s.Tolerance != nil {
		b.WriteString(r.kv("tolerance", trace.Num(*s.Tolerance)))
	}
	if s.IsDiagonallyDominant != nil {
		b.WriteString(r.kv("diagonally dominant", fmt.Sprint(*s.IsDiagonallyDominant)))
	}
	if s.Explanation != "" {
		b.WriteString(r.styles.KeyHint.Render(s.Explanation) + "\n")
	}
	return b.String()
}

func (r *Renderer) Iteration(it trace.Iteration) string {
	var b strings.Builder
	header := fmt.Sprintf("Iteration %d", it.Index)
	if it.Converged {
		header += " " + r.styles.Success.Render("✓")
	}
	b.WriteString("  " + r.styles.Selected.Render(header) + "\n")
	for _, c := range it.Calculations {
		b.WriteString("    " + r.styles.Value.Render(c) + "\n")
	}
	b.WriteString("    " + r.styles.Label.Render("max error: ") + r.styles.Value.Render(trace.FormatNumber(it.MaxError, r.precision)) + "\n")
	return b.String()
}

func (r *Renderer) Validation(v jacobi.Validation) string {
	if !v.Valid {
		return r.styles.Error.Render("✗ invalid: "+v.Error) + "\n"
	}
	out := r.styles.Success.Render("✓ valid") + "\n"
	if v.IsDiagonallyDominant != nil {
		out += r.kv("diagonally dominant", fmt.Sprint(*v.IsDiagonallyDominant))
		if !*v.IsDiagonallyDominant {
			out += r.styles.Warning.Render("  convergence is not guaranteed") + "\n"
		}
	}
	return out
}

func (r *Renderer) Comparison(c solver.Comparison) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("COMPARISON") + "\n")
	b.WriteString(r.kv("direct", r.summary(c.Direct)))
	b.WriteString(r.kv("jacobi", r.summary(c.Jacobi)))
	if c.MaxDifference == nil {
		b.WriteString(r.styles.Muted.Render("  no difference: at least one method failed") + "\n")
		return b.String()
	}
	b.WriteString(r.kv("max difference", trace.FormatNumber(*c.MaxDifference, r.precision)))
	if c.Agree {
		b.WriteString(r.styles.Success.Render("✓ methods agree") + "\n")
	} else {
		b.WriteString(r.styles.Warning.Render("! methods disagree") + "\n")
	}
	return b.String()
}

func (r *Renderer) summary(res trace.Result) string {
	if !res.Success {
		return r.styles.Error.Render(res.Error)
	}
	return r.vector(res.Solution)
}

func (r *Renderer) kv(label, value string) string {
	return "  " + r.styles.Label.Render(label+": ") + r.styles.Value.Render(value) + "\n"
}

func (r *Renderer) vector(v linalg.Vector) string {
	return "[" + strings.Join(trace.FormatVector(v, r.precision), ", ") + "]"
}

func (r *Renderer) value(v trace.Value) string {
	if v.IsVector() {
		return r.kv("result", r.vector(v.Vector))
	}
	return r.kv("result", trace.FormatNumber(*v.Scalar, r.precision))
}

// matrixBlock renders A, or the augmented [A | b] when constants are given.
func (r *Renderer) matrixBlock(m linalg.Matrix, b linalg.Vector) string {
	cells := make([][]string, len(m))
	width := 1
	for i, row := range m {
		cells[i] = trace.FormatVector(row, r.precision)
		if i < len(b) {
			cells[i] = append(cells[i], trace.FormatNumber(b[i], r.precision))
		}
		for _, c := range cells[i] {
			width = max(width, len(c))
		}
	}

	var out strings.Builder
	for i, row := range cells {
		padded := make([]string, len(row))
		for j, c := range row {
			padded[j] = fmt.Sprintf("%*s", width, c)
		}
		line := padded
		if i < len(b) && len(padded) > 0 {
			line = append(append([]string{}, padded[:len(padded)-1]...), "|", padded[len(padded)-1])
		}
		out.WriteString("  " + r.styles.Value.Render("[ "+strings.Join(line, "  ")+" ]") + "\n")
	}
	return out.String()
}
