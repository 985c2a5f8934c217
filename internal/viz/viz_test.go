package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/physics"
)

func results() []experiment.Result {
	ramp := func(slope float64) dynamo.Trajectory {
		tr := dynamo.NewTrajectory(11)
		for i := 0; i <= 10; i++ {
			tr = append(tr, dynamo.Sample{T: float64(i), Y: 18 + slope*float64(i)})
		}
		return tr
	}
	return []experiment.Result{
		{Method: "euler", Trajectory: ramp(0.5), Period: 10, PeriodDetected: true},
		{Method: "rk4", Trajectory: ramp(0.6)},
		{Method: "rkf45", Trajectory: dynamo.Trajectory{{T: 0, Y: 18}}},
	}
}

func TestPlotTerminal(t *testing.T) {
	out := PlotTerminal(results(), strings.ToUpper, 40, 8, "temperature")
	if out == "" {
		t.Fatal("expected a chart")
	}
	if !strings.Contains(out, "EULER") || !strings.Contains(out, "RK4") {
		t.Error("expected legends for plotted methods")
	}
	if strings.Contains(out, "RKF45") {
		t.Error("single-sample trajectories should be skipped")
	}
	if PlotTerminal(nil, nil, 40, 8, "") != "" {
		t.Error("expected empty output without data")
	}
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable(results(), nil)
	for _, want := range []string{"euler", "10.0000", "rk4"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
	if ProgressBar(0.5, 4) != "██░░" {
		t.Errorf("unexpected bar %q", ProgressBar(0.5, 4))
	}
	if ProgressBar(2, 3) != "███" {
		t.Error("bar should clamp")
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerToggles(t *testing.T) {
	v := NewViewer("heat", results(), nil)
	if len(v.Visible()) != 3 {
		t.Fatal("all methods start visible")
	}

	v.Update(key("2"))
	if got := v.Visible(); len(got) != 2 || got[1].Method != "rkf45" {
		t.Errorf("expected rk4 hidden, got %v", got)
	}
	if !strings.Contains(v.View(), "[ ] 2 rk4") {
		t.Error("view should show rk4 unchecked")
	}

	v.Update(key("9"))
	v.Update(key("1"))
	if len(v.Visible()) != 1 {
		t.Errorf("expected one visible method, got %d", len(v.Visible()))
	}

	v.Update(key("a"))
	if len(v.Visible()) != 3 {
		t.Error("a should show everything")
	}

	v.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if v.width != 60 || v.height != 20 {
		t.Error("window size not applied")
	}

	if _, cmd := v.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != ThemeThermal.Name {
		t.Error("unknown theme should fall back to thermal")
	}
	SetTheme("chiller")
	defer SetTheme("thermal")
	if CurrentTheme.Name != "chiller" {
		t.Errorf("expected chiller, got %s", CurrentTheme.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
	for _, th := range Themes {
		if th.Acting == th.Idle {
			t.Errorf("%s: acting and idle share a colour", th.Name)
		}
	}
}

func TestSeriesColorCycles(t *testing.T) {
	th := ThemeThermal
	if th.SeriesColor(0) != th.SeriesColor(len(th.Series)) {
		t.Error("series colours should cycle over methods")
	}
	if (Theme{}).SeriesColor(3) != asciigraph.Default {
		t.Error("a theme without series colours should use the terminal default")
	}
}

func TestPlotBand(t *testing.T) {
	out := PlotBand(results(), nil, 40, 8, "temperature", 22, 24)
	if !strings.Contains(out, "low") || !strings.Contains(out, "high") {
		t.Error("expected band legends")
	}
	if strings.Contains(PlotTerminal(results(), nil, 40, 8, ""), "high") {
		t.Error("plain plot should not draw the band")
	}
	if PlotBand(nil, nil, 40, 8, "", 22, 24) != "" {
		t.Error("band lines alone are not a chart")
	}
}

func TestFinalState(t *testing.T) {
	r := experiment.Result{}
	if _, ok := FinalState(r); ok || RelayMarker(r) != "" {
		t.Error("a run without switches has no final state")
	}

	r.Events = []physics.Event{{Time: 1, Transition: physics.TransitionOff}, {Time: 3, Transition: physics.TransitionOn}}
	if s, ok := FinalState(r); !ok || s != physics.StateActing {
		t.Errorf("expected acting, got %v %v", s, ok)
	}
	if !strings.Contains(RelayMarker(r), "acting") {
		t.Error("expected acting marker")
	}

	r.Events = r.Events[:1]
	if s, _ := FinalState(r); s != physics.StateIdle {
		t.Errorf("expected idle, got %v", s)
	}
	if !strings.Contains(RelayMarker(r), "idle") {
		t.Error("expected idle marker")
	}
}

func TestViewerBand(t *testing.T) {
	res := results()
	res[0].Events = []physics.Event{{Time: 2, Transition: physics.TransitionOff}}
	view := NewViewer("heat", res, nil).WithBand(22, 24).View()
	if !strings.Contains(view, "band [22, 24]") {
		t.Error("expected the band in the title")
	}
	if !strings.Contains(view, "idle") {
		t.Error("expected the relay marker for euler")
	}
	if strings.Contains(NewViewer("heat", results(), nil).View(), "band [") {
		t.Error("band should only show when set")
	}
}
