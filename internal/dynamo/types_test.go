package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestProblemValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Problem
		wantErr bool
	}{
		{"valid", Problem{Start: 0, End: 1, Steps: 10, Initial: 1}, false},
		{"zero length", Problem{Start: 1, End: 1, Steps: 10}, true},
		{"reversed", Problem{Start: 2, End: 1, Steps: 10}, true},
		{"zero steps", Problem{Start: 0, End: 1, Steps: 0}, true},
		{"negative steps", Problem{Start: 0, End: 1, Steps: -3}, true},
		{"nan end", Problem{Start: 0, End: math.NaN(), Steps: 3}, true},
		{"inf initial", Problem{Start: 0, End: 1, Steps: 3, Initial: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrDomain) {
					t.Errorf("expected ErrDomain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProblemTimeEndsExactly(t *testing.T) {
	p := Problem{Start: 0.1, End: 0.7, Steps: 3}
	if p.Time(3) != 0.7 {
		t.Errorf("expected last grid point 0.7, got %v", p.Time(3))
	}
	if math.Abs(p.Time(1)-0.3) > 1e-15 {
		t.Errorf("expected 0.3, got %v", p.Time(1))
	}
}

func TestTrajectoryResample(t *testing.T) {
	tr := Trajectory{{0, 0}, {1, 10}, {3, 30}}

	got := tr.Resample(4)
	want := []float64{0, 10, 20, 30}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if tr.At(-1) != 0 || tr.At(5) != 30 {
		t.Error("At should clamp outside the span")
	}
}

func TestTrajectoryHelpers(t *testing.T) {
	tr := Trajectory{{0, 2}, {0.5, -1}, {1, 4}}

	lo, hi := tr.Bounds()
	if lo != -1 || hi != 4 {
		t.Errorf("expected bounds [-1, 4], got [%v, %v]", lo, hi)
	}
	if !tr.Increasing() {
		t.Error("expected increasing times")
	}
	if tr.Last().T != 1 {
		t.Errorf("expected last time 1, got %v", tr.Last().T)
	}

	tr = append(tr, Sample{T: 1, Y: math.NaN()})
	if tr.Increasing() {
		t.Error("repeated time should not count as increasing")
	}
	if tr.IsValid() {
		t.Error("NaN sample should be invalid")
	}
}

func TestConvergenceErrorUnwrap(t *testing.T) {
	var err error = &ConvergenceError{Step: 3, Time: 1.5, StepSize: 1e-5, Wrapped: ErrStepTooSmall}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("ConvergenceError should unwrap to ErrStepTooSmall")
	}
	var ce *ConvergenceError
	if !errors.As(err, &ce) || ce.Step != 3 {
		t.Error("errors.As should recover the step")
	}
}
