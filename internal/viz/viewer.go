package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/export"
	"github.com/san-kum/thermosim/internal/physics"
)

// Viewer is a Bubble Tea model showing a comparison with per-method toggles,
// the terminal counterpart of a checkbox per method.
type Viewer struct {
	title   string
	results []experiment.Result
	label   func(string) string
	visible []bool
	theme   int

	low, high float64

	width  int
	height int
}

func NewViewer(title string, results []experiment.Result, label func(string) string) *Viewer {
	visible := make([]bool, len(results))
	for i := range visible {
		visible[i] = true
	}
	return &Viewer{
		title:   title,
		results: results,
		label:   label,
		visible: visible,
		low:     math.NaN(),
		high:    math.NaN(),
		width:   100,
		height:  30,
	}
}

// WithBand draws the hysteresis thresholds on the chart.
func (v *Viewer) WithBand(low, high float64) *Viewer {
	v.low, v.high = low, high
	return v
}

func (v *Viewer) Init() tea.Cmd { return nil }

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "a":
			for i := range v.visible {
				v.visible[i] = true
			}
		case "t":
			v.theme = (v.theme + 1) % len(Themes)
			ApplyTheme(Themes[v.theme])
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				v.Toggle(int(key[0] - '1'))
			}
		}
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

// Toggle flips the visibility of the i-th method; out of range is ignored.
func (v *Viewer) Toggle(i int) {
	if i >= 0 && i < len(v.visible) {
		v.visible[i] = !v.visible[i]
	}
}

// Visible returns the results currently shown.
func (v *Viewer) Visible() []experiment.Result {
	out := make([]experiment.Result, 0, len(v.results))
	for i, r := range v.results {
		if v.visible[i] {
			out = append(out, r)
		}
	}
	return out
}

func (v *Viewer) name(method string) string {
	if v.label == nil {
		return method
	}
	return v.label(method)
}

func (v *Viewer) View() string {
	var sb strings.Builder
	sb.WriteString(Title.Render(v.title))
	if !math.IsNaN(v.low) && !math.IsNaN(v.high) {
		sb.WriteString("  ")
		sb.WriteString(BandStyle.Render(fmt.Sprintf("band [%g, %g]", v.low, v.high)))
	}
	sb.WriteString("\n\n")

	plotWidth := max(v.width-12, 20)
	plotHeight := max(v.height-len(v.results)-10, 5)
	if chart := PlotBand(v.Visible(), v.label, plotWidth, plotHeight, "temperature", v.low, v.high); chart != "" {
		sb.WriteString(chart)
	} else {
		sb.WriteString(Subtle.Render("no method selected"))
	}
	sb.WriteString("\n\n")

	for i, r := range v.results {
		box := "[ ]"
		if v.visible[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %d %s", box, i+1, export.Legend(v.name(r.Method), r))
		if v.visible[i] {
			sb.WriteString(MetricValue.Render(line))
		} else {
			sb.WriteString(MetricLabel.Render(line))
		}
		if marker := RelayMarker(r); marker != "" {
			sb.WriteString("  ")
			sb.WriteString(marker)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(KeyHint.Render("1-9 toggle · a all · t theme · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// FinalState is the relay state a run ended in, read from its last committed
// switch. It reports false for runs that never switched.
func FinalState(r experiment.Result) (physics.ActivationState, bool) {
	if len(r.Events) == 0 {
		return physics.StateIdle, false
	}
	if r.Events[len(r.Events)-1].Transition == physics.TransitionOn {
		return physics.StateActing, true
	}
	return physics.StateIdle, true
}

// RelayMarker renders the final relay state in the theme's acting or idle
// colour, or nothing for runs that never switched.
func RelayMarker(r experiment.Result) string {
	state, ok := FinalState(r)
	switch {
	case !ok:
		return ""
	case state == physics.StateActing:
		return Acting.Render("● acting")
	default:
		return Idle.Render("○ idle")
	}
}
