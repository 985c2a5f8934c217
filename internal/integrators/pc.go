package integrators

import "github.com/san-kum/thermosim/internal/dynamo"

// PredictorCorrector is the four-step Adams-Bashforth-Moulton method with a
// single correction pass. The first four steps are taken with RK4.
type PredictorCorrector struct {
	bootstrap RK4
}

func NewPredictorCorrector() *PredictorCorrector {
	return &PredictorCorrector{}
}

func (m *PredictorCorrector) Name() string { return "pc" }

func (m *PredictorCorrector) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h := p.StepSize()
	tr := start(p)
	// rates[j] is f(t_j, w_j) at the accepted point j.
	rates := make([]float64, 0, p.Steps)
	w := p.Initial

	boot := min(p.Steps, 4)
	for i := 0; i < boot; i++ {
		var k1 float64
		w, k1 = m.bootstrap.Step(sys, p.Time(i), w, h)
		rates = append(rates, k1)
		tr = append(tr, dynamo.Sample{T: p.Time(i + 1), Y: w})
	}

	for i := 4; i < p.Steps; i++ {
		fi := sys.Rate(p.Time(i), w)
		rates = append(rates, fi)
		f1, f2, f3 := rates[i-1], rates[i-2], rates[i-3]

		predicted := w + h/24*(55*fi-59*f1+37*f2-9*f3)
		next := p.Time(i + 1)
		w += h / 24 * (9*sys.Rate(next, predicted) + 19*fi - 5*f1 + f2)
		tr = append(tr, dynamo.Sample{T: next, Y: w})
	}
	return tr, nil
}
