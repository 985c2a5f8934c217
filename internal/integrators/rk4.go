package integrators

import "github.com/san-kum/thermosim/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	tr := start(p)
	w := p.Initial
	for i := 0; i < p.Steps; i++ {
		w, _ = r.Step(sys, p.Time(i), w, h)
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}
	return tr, nil
}

// Step advances one RK4 step from (t, w) and also returns the first stage,
// which is the rate at the accepted point.
func (r *RK4) Step(sys dynamo.System, t, w, h float64) (float64, float64) {
	k1 := sys.Rate(t, w)
	k2 := sys.Rate(t+h*0.5, w+h*0.5*k1)
	k3 := sys.Rate(t+h*0.5, w+h*0.5*k2)
	k4 := sys.Rate(t+h, w+h*k3)
	return w + h/6.0*(k1+2*k2+2*k3+k4), k1
}
