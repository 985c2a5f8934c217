package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/thermosim/internal/dynamo"
)

// Fehlberg 4(5) coefficients
var (
	a2 = 1.0 / 4.0
	a3 = 3.0 / 8.0
	a4 = 12.0 / 13.0
	a6 = 1.0 / 2.0

	b21 = 1.0 / 4.0
	b31 = 3.0 / 32.0
	b32 = 9.0 / 32.0
	b41 = 1932.0 / 2197.0
	b42 = -7200.0 / 2197.0
	b43 = 7296.0 / 2197.0
	b51 = 439.0 / 216.0
	b52 = -8.0
	b53 = 3680.0 / 513.0
	b54 = -845.0 / 4104.0
	b61 = -8.0 / 27.0
	b62 = 2.0
	b63 = -3544.0 / 2565.0
	b64 = 1859.0 / 4104.0
	b65 = -11.0 / 40.0

	// fifth-order solution
	c1 = 16.0 / 135.0
	c3 = 6656.0 / 12825.0
	c4 = 28561.0 / 56430.0
	c5 = -9.0 / 50.0
	c6 = 2.0 / 55.0

	// difference between the fifth- and fourth-order solutions
	e1 = 1.0 / 360.0
	e3 = -128.0 / 4275.0
	e4 = -2197.0 / 75240.0
	e5 = 1.0 / 50.0
	e6 = 2.0 / 55.0
)

// Step size controller limits.
const (
	rkfSafety   = 0.84
	rkfMinScale = 0.1
	rkfMaxScale = 4.0
)

// RKF45 is the adaptive Runge-Kutta-Fehlberg method. It ignores
// Problem.Steps: the grid is chosen by the error controller, starting from
// MaxStep.
type RKF45 struct {
	Tolerance float64
	MinStep   float64
	MaxStep   float64
}

func NewRKF45(tol, minStep, maxStep float64) *RKF45 {
	return &RKF45{Tolerance: tol, MinStep: minStep, MaxStep: maxStep}
}

func (r *RKF45) Name() string { return "rkf45" }

func (r *RKF45) Validate() error {
	if !(r.Tolerance > 0) || math.IsInf(r.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", dynamo.ErrDomain, r.Tolerance)
	}
	if !(r.MinStep > 0) || !(r.MaxStep >= r.MinStep) || math.IsInf(r.MaxStep, 0) {
		return fmt.Errorf("%w: step bounds must satisfy 0 < min (%g) <= max (%g)",
			dynamo.ErrDomain, r.MinStep, r.MaxStep)
	}
	return nil
}

// Integrate returns the accepted samples. When the controller needs a step
// below MinStep it stops and returns the samples accepted so far together
// with a *dynamo.ConvergenceError.
func (r *RKF45) Integrate(sys dynamo.System, p dynamo.Problem) (dynamo.Trajectory, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	interval := p
	interval.Steps = 1
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	tr := dynamo.Trajectory{{T: p.Start, Y: p.Initial}}
	t, w := p.Start, p.Initial
	h := r.MaxStep
	final := t+h >= p.End
	if final {
		h = p.End - t
	}

	for {
		next, est := r.attempt(sys, t, w, h)
		if math.IsNaN(est) || math.IsInf(est, 0) || math.IsNaN(next) || math.IsInf(next, 0) {
			return tr, &dynamo.ConvergenceError{Step: len(tr) - 1, Time: t, StepSize: h, Wrapped: dynamo.ErrUnstable}
		}

		if est <= r.Tolerance {
			if final {
				t = p.End
			} else {
				t += h
			}
			w = next
			tr = append(tr, dynamo.Sample{T: t, Y: w})
			if final {
				return tr, nil
			}
		}

		h = math.Min(h*r.scale(est), r.MaxStep)
		if h < r.MinStep {
			return tr, &dynamo.ConvergenceError{Step: len(tr) - 1, Time: t, StepSize: h, Wrapped: dynamo.ErrStepTooSmall}
		}
		final = t+h >= p.End
		if final {
			h = p.End - t
		}
	}
}

// attempt evaluates the six stages in order and returns the fifth-order
// solution and the local error estimate per unit step.
func (r *RKF45) attempt(sys dynamo.System, t, w, h float64) (float64, float64) {
	k1 := sys.Rate(t, w)
	k2 := sys.Rate(t+a2*h, w+h*b21*k1)
	k3 := sys.Rate(t+a3*h, w+h*(b31*k1+b32*k2))
	k4 := sys.Rate(t+a4*h, w+h*(b41*k1+b42*k2+b43*k3))
	k5 := sys.Rate(t+h, w+h*(b51*k1+b52*k2+b53*k3+b54*k4))
	k6 := sys.Rate(t+a6*h, w+h*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5))

	next := w + h*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)
	est := math.Abs(e1*k1 + e3*k3 + e4*k4 + e5*k5 + e6*k6)
	return next, est
}

func (r *RKF45) scale(est float64) float64 {
	delta := rkfSafety * math.Pow(r.Tolerance/est, 0.25)
	switch {
	case delta <= rkfMinScale:
		return rkfMinScale
	case delta >= rkfMaxScale:
		return rkfMaxScale
	}
	return delta
}
