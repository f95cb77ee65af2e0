package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/linsolve/internal/trace"
)

const visibleIterations = 5

// Browser is a Bubble Tea model that pages through the steps of a trace.
type Browser struct {
	result    trace.Result
	theme     Theme
	renderer  *Renderer
	precision int
	step      int
	offset    int
	showChart bool
	maxIter   int
	width     int
	height    int
}

// NewBrowser builds a browser over res. maxIterations scales the progress
// bar of Jacobi traces and may be zero.
func NewBrowser(res trace.Result, theme Theme, precision, maxIterations int) Browser {
	return Browser{
		result:    res,
		theme:     theme,
		renderer:  NewRenderer(theme, precision),
		precision: precision,
		maxIter:   maxIterations,
		width:     80,
		height:    24,
	}
}

func (m Browser) Init() tea.Cmd { return nil }

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n":
		if m.step < len(m.result.Steps)-1 {
			m.step++
			m.offset = 0
		}
	case "left", "h", "p":
		if m.step > 0 {
			m.step--
			m.offset = 0
		}
	case "down", "j":
		if m.offset < m.maxOffset() {
			m.offset++
		}
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "g":
		m.showChart = !m.showChart
	case "t":
		m.theme = nextTheme(m.theme)
		m.renderer = NewRenderer(m.theme, m.precision)
	}
	return m, nil
}

func (m Browser) maxOffset() int {
	if len(m.result.Steps) == 0 {
		return 0
	}
	return max(len(m.result.Steps[m.step].Iterations)-visibleIterations, 0)
}

// Position reports the current step index and iteration scroll offset.
func (m Browser) Position() (step, offset int) { return m.step, m.offset }

func (m Browser) View() string {
	s := m.renderer.styles
	var b strings.Builder

	header := fmt.Sprintf("%s method · step %d/%d", m.result.Method, m.step+1, max(len(m.result.Steps), 1))
	b.WriteString(s.Title.Render(header) + "\n")
	b.WriteString(Separator(s, min(m.width, 60)) + "\n\n")

	if len(m.result.Steps) == 0 {
		b.WriteString(m.renderer.Outcome(m.result))
		b.WriteString("\n" + m.help())
		return b.String()
	}

	step := m.result.Steps[m.step]
	paged := step
	if len(step.Iterations) > 0 {
		end := min(m.offset+visibleIterations, len(step.Iterations))
		paged.Iterations = step.Iterations[m.offset:end]
	}
	b.WriteString(s.Panel.Render(strings.TrimRight(m.renderer.Step(paged), "\n")) + "\n")

	if len(step.Iterations) > 0 {
		errs := make([]float64, len(step.Iterations))
		for i, it := range step.Iterations {
			errs[i] = it.MaxError
		}
		b.WriteString(s.Label.Render("error  ") + Sparkline(s, errs, 40) + "\n")
		if m.maxIter > 0 {
			b.WriteString(s.Label.Render("budget ") + ProgressBar(s, float64(len(errs))/float64(m.maxIter), 40) + "\n")
		}
		if m.showChart {
			b.WriteString("\n" + ConvergenceChart(errs, string(m.result.Method)) + "\n")
		}
	}

	if m.step == len(m.result.Steps)-1 {
		b.WriteString("\n" + m.renderer.Outcome(m.result))
	}

	b.WriteString("\n" + m.help())
	return b.String()
}

func (m Browser) help() string {
	return m.renderer.styles.KeyHint.Render("h/l step  j/k scroll  g chart  t theme  q quit")
}

// RunBrowser runs the browser full screen until the user quits.
func RunBrowser(res trace.Result, theme Theme, precision, maxIterations int) error {
	_, err := tea.NewProgram(NewBrowser(res, theme, precision, maxIterations), tea.WithAltScreen()).Run()
	return err
}
