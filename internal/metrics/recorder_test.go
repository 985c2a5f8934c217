package metrics

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

func TestInstrumentCountsRate(t *testing.T) {
	r := NewRecorder()
	sys := r.Instrument("euler", dynamo.RateFunc(func(t, y float64) float64 { return -y }))

	if _, ok := sys.(dynamo.Differentiable); ok {
		t.Fatal("plain rate function must not become differentiable")
	}
	for i := 0; i < 5; i++ {
		if got := sys.Rate(0, 2); got != -2 {
			t.Fatalf("expected -2, got %v", got)
		}
	}
	if got := r.Evaluations("euler", CapabilityRate); got != 5 {
		t.Errorf("expected 5 evaluations, got %v", got)
	}
	if got := r.Evaluations("rk4", CapabilityRate); got != 0 {
		t.Errorf("other methods must stay at zero, got %v", got)
	}
}

func TestInstrumentKeepsPartials(t *testing.T) {
	r := NewRecorder()
	sys := r.Instrument("taylor2", dynamo.Partials{
		F:  func(t, y float64) float64 { return y },
		Ft: func(t, y float64) float64 { return 1 },
		Fy: func(t, y float64) float64 { return 2 },
	})

	d, ok := sys.(dynamo.Differentiable)
	if !ok {
		t.Fatal("instrumented partials lost the Differentiable capability")
	}
	d.Rate(0, 1)
	if d.RateTimePartial(0, 1) != 1 || d.RateStatePartial(0, 1) != 2 {
		t.Error("partials not forwarded")
	}
	d.RateStatePartial(0, 1)

	if r.Evaluations("taylor2", CapabilityTimePartial) != 1 {
		t.Error("expected one time partial")
	}
	if r.Evaluations("taylor2", CapabilityStatePartial) != 2 {
		t.Error("expected two state partials")
	}
}

func TestObserverCountsBySource(t *testing.T) {
	r := NewRecorder()
	o := r.Observer("rk4")
	o.OnTransition(physics.Event{Time: 1, Transition: physics.TransitionOff})
	o.OnTransition(physics.Event{Time: 2, Transition: physics.TransitionOn})
	o.OnTransition(physics.Event{Time: 3, Transition: physics.TransitionOff})
	o.OnTransition(physics.Event{Time: 3, Transition: physics.TransitionOff, StateOnly: true})

	if got := r.Transitions("rk4", "off"); got != 2 {
		t.Errorf("expected 2 off switches from Rate, got %v", got)
	}
	if got := r.Transitions("rk4", "on"); got != 1 {
		t.Errorf("expected 1 on switch, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	sys := r.Instrument("pc", dynamo.RateFunc(func(t, y float64) float64 { return 0 }))
	sys.Rate(0, 0)
	r.ObserveRun("pc", 10.5, true, 42, 3*time.Millisecond)
	r.ObserveRun("euler", 0, false, 0, time.Millisecond)

	path := filepath.Join(t.TempDir(), "thermosim.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`thermosim_rate_evaluations_total{capability="rate",method="pc"} 1`,
		`thermosim_period_seconds{method="pc"} 10.5`,
		`thermosim_action_time_seconds{method="pc"} 42`,
		`thermosim_run_duration_seconds_count{method="pc"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
	if strings.Contains(text, `thermosim_period_seconds{method="euler"}`) {
		t.Error("undetected period should not be exported")
	}
}

func TestSummarize(t *testing.T) {
	tr := dynamo.Trajectory{
		{T: 0, Y: 20},
		{T: 1, Y: 22},
		{T: 2, Y: 24},
		{T: 4, Y: 25},
	}
	got := Summarize(tr, NewMeanTemp(), NewOvershoot(22, 24), NewComfort(22, 24))

	// (21 + 23 + 2*24.5) / 4
	if math.Abs(got["mean_temp"]-23.25) > 1e-12 {
		t.Errorf("mean_temp: expected 23.25, got %v", got["mean_temp"])
	}
	if got["overshoot"] != 2 {
		t.Errorf("overshoot: expected 2, got %v", got["overshoot"])
	}
	if math.Abs(got["comfort"]-0.75) > 1e-12 {
		t.Errorf("comfort: expected 0.75, got %v", got["comfort"])
	}
}

func TestMetricReset(t *testing.T) {
	m := NewMeanTemp()
	m.Observe(dynamo.Sample{T: 0, Y: 10})
	m.Observe(dynamo.Sample{T: 1, Y: 30})
	m.Reset()
	m.Observe(dynamo.Sample{T: 5, Y: 21})
	if m.Value() != 21 {
		t.Errorf("single sample after reset: expected 21, got %v", m.Value())
	}
}
