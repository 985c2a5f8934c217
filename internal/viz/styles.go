package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/thermosim/internal/experiment"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	StatusOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))

	Acting    = lipgloss.NewStyle().Bold(true)
	Idle      = lipgloss.NewStyle()
	BandStyle = lipgloss.NewStyle().Italic(true)
)

// ApplyTheme recolours the shared styles.
func ApplyTheme(t Theme) {
	CurrentTheme = t
	Title = Title.Foreground(t.Title)
	Subtle = Subtle.Foreground(t.Muted)
	MetricValue = MetricValue.Foreground(t.Text)
	MetricLabel = MetricLabel.Foreground(t.Muted)
	KeyHint = KeyHint.Foreground(t.Muted)
	HeaderStyle = HeaderStyle.Foreground(t.Text).BorderForeground(t.Muted)
	StatusOK = StatusOK.Foreground(t.OK)
	StatusFailed = StatusFailed.Foreground(t.Failed)
	Panel = Panel.BorderForeground(t.Muted)

	Acting = Acting.Foreground(t.Acting)
	Idle = Idle.Foreground(t.Idle)
	BandStyle = BandStyle.Foreground(t.Band)
	SparkHigh = SparkHigh.Foreground(t.Acting)
	SparkMid = SparkMid.Foreground(t.Band)
	SparkLow = SparkLow.Foreground(t.Idle)
}

// SummaryTable renders one row per result: method, period, action time,
// comfort and status.
func SummaryTable(results []experiment.Result, label func(string) string) string {
	const row = "%-12s %12s %12s %9s  %s"

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(fmt.Sprintf(row, "method", "period", "action time", "comfort", "status")))
	sb.WriteString("\n")
	for _, r := range results {
		name := r.Method
		if label != nil {
			name = label(r.Method)
		}
		period := "-"
		if r.PeriodDetected {
			period = fmt.Sprintf("%.4f", r.Period)
		}
		status := StatusOK.Render("ok")
		if r.Err != nil {
			status = StatusFailed.Render(r.Err.Error())
		}
		line := fmt.Sprintf(row, name, period, fmt.Sprintf("%.4f", r.ActionTime),
			fmt.Sprintf("%.1f%%", 100*r.Summary["comfort"]), status)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// ProgressBar renders a filled bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
