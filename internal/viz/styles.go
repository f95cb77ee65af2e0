package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	KeyHint  lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Foreground(t.Text),
		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Success),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
	}
}

// ProgressBar renders the fraction of the iteration budget used
func ProgressBar(s Styles, percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent >= 1 {
		return s.Warning.Render(bar)
	}
	return s.Success.Render(bar)
}

// Sparkline renders the decay of a positive series on a log scale, one
// character per value, sampled down to width.
func Sparkline(s Styles, values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	logs := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		logs[i] = math.Log10(math.Max(math.Abs(v), 1e-16))
		lo = math.Min(lo, logs[i])
		hi = math.Max(hi, logs[i])
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (logs[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteString(s.Value.Render(string(chars[idx])))
	}

	return result.String()
}

func Separator(s Styles, width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.Muted.Render(left + " ◆ " + right)
}
