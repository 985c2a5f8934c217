package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/thermosim/internal/dynamo"
)

func TestRK4Accuracy(t *testing.T) {
	sys := dynamo.RateFunc(func(t, y float64) float64 { return -y })
	p := dynamo.Problem{Start: 0, End: 1, Steps: 100, Initial: 1}

	traj, err := NewRK4().Integrate(sys, p)
	if err != nil {
		t.Fatal(err)
	}

	expected := math.Exp(-1)
	if math.Abs(traj.Last().Y-expected) > 1e-8 {
		t.Errorf("final value error too large: got %.10f, expected %.10f", traj.Last().Y, expected)
	}
}

func TestRK4StepStages(t *testing.T) {
	var times []float64
	sys := dynamo.RateFunc(func(t, y float64) float64 {
		times = append(times, t)
		return 1
	})

	w, k1 := NewRK4().Step(sys, 2, 0, 0.5)
	if math.Abs(w-0.5) > 1e-15 || k1 != 1 {
		t.Errorf("expected w=0.5 k1=1, got w=%v k1=%v", w, k1)
	}
	want := []float64{2, 2.25, 2.25, 2.5}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("stage %d evaluated at t=%v, expected %v", i+1, times[i], want[i])
		}
	}
}
