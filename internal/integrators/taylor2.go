package integrators

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/dynamo"
)

// Taylor2 is the second-order Taylor method. It needs a
// [dynamo.Differentiable] system.
type Taylor2 struct{}

func NewTaylor2() *Taylor2 {
	return &Taylor2{}
}

func (m *Taylor2) Name() string { return "taylor2" }

func (m *Taylor2) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	d, ok := sys.(dynamo.Differentiable)
	if !ok {
		return nil, fmt.Errorf("taylor2: %w", dynamo.ErrNotDifferentiable)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	half := h * h / 2
	tr := start(p)
	w := p.Initial
	for i := 0; i < p.Steps; i++ {
		t := p.Time(i)
		f := d.Rate(t, w)
		ft := d.RateTimePartial(t, w)
		fy := d.RateStatePartial(t, w)
		w += h*f + half*(ft+fy*f)
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}
	return tr, nil
}
