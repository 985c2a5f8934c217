package integrators

import "github.com/san-kum/thermosim/internal/dynamo"

// Mean is the modified Euler (midpoint) method.
type Mean struct{}

func NewMean() *Mean {
	return &Mean{}
}

func (m *Mean) Name() string { return "mean" }

func (m *Mean) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	tr := start(p)
	w := p.Initial
	for i := 0; i < p.Steps; i++ {
		t := p.Time(i)
		s1 := sys.Rate(t, w)
		w += h * sys.Rate(t+h/2, w+h/2*s1)
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}
	return tr, nil
}
