package integrators

import "github.com/san-kum/thermosim/internal/dynamo"

// Trapezium is Heun's method: an Euler predictor followed by averaging the
// slopes at both ends of the step.
type Trapezium struct{}

func NewTrapezium() *Trapezium {
	return &Trapezium{}
}

func (m *Trapezium) Name() string { return "trapezium" }

func (m *Trapezium) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	tr := start(p)
	w := p.Initial
	for i := 0; i < p.Steps; i++ {
		t := p.Time(i)
		s1 := sys.Rate(t, w)
		s2 := sys.Rate(t+h, w+h*s1)
		w += h * (s1 + s2) / 2
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}
	return tr, nil
}
