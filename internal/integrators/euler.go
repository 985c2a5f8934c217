package integrators

import "github.com/san-kum/thermosim/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	tr := start(p)
	w := p.Initial
	for i := 0; i < p.Steps; i++ {
		w += h * sys.Rate(p.Time(i), w)
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}
	return tr, nil
}

func start(p dynamo.Problem) dynamo.Trajectory {
	tr := dynamo.NewTrajectory(p.Steps + 1)
	return append(tr, dynamo.Sample{T: p.Start, Y: p.Initial})
}
