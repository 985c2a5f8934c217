package dynamo

import (
	"fmt"
	"math"
)

// System is the rate capability of a scalar ODE dy/dt = f(t, y).
//
// Implementations may be stateful: every call is allowed to mutate the
// receiver, so integrators must call Rate exactly in the order their formula
// prescribes.
type System interface {
	Rate(t, y float64) float64
}

// Differentiable is a System that also exposes the partial derivatives of its
// rate function, as needed by the second-order Taylor method.
type Differentiable interface {
	System
	RateTimePartial(t, y float64) float64
	RateStatePartial(t, y float64) float64
}

// RateFunc adapts a plain function to the System interface.
type RateFunc func(t, y float64) float64

func (f RateFunc) Rate(t, y float64) float64 { return f(t, y) }

// Partials bundles a rate function with its partial derivatives.
type Partials struct {
	F  RateFunc
	Ft RateFunc
	Fy RateFunc
}

func (p Partials) Rate(t, y float64) float64             { return p.F(t, y) }
func (p Partials) RateTimePartial(t, y float64) float64  { return p.Ft(t, y) }
func (p Partials) RateStatePartial(t, y float64) float64 { return p.Fy(t, y) }

// Integrator advances a System across a Problem and returns the sampled
// trajectory.
type Integrator interface {
	Name() string
	Integrate(sys System, p Problem) (Trajectory, error)
}

// Problem is an initial value problem over [Start, End].
type Problem struct {
	Start   float64
	End     float64
	Steps   int
	Initial float64
}

// Validate rejects problems no method can step through.
func (p Problem) Validate() error {
	if !finite(p.Start) || !finite(p.End) {
		return fmt.Errorf("%w: interval [%g, %g] is not finite", ErrDomain, p.Start, p.End)
	}
	if p.End <= p.Start {
		return fmt.Errorf("%w: interval end %g must be greater than start %g", ErrDomain, p.End, p.Start)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("%w: step count must be positive, got %d", ErrDomain, p.Steps)
	}
	if !finite(p.Initial) {
		return fmt.Errorf("%w: initial value %g is not finite", ErrDomain, p.Initial)
	}
	return nil
}

// StepSize is the uniform spacing (End-Start)/Steps.
func (p Problem) StepSize() float64 {
	return (p.End - p.Start) / float64(p.Steps)
}

// Time returns the i-th grid point. The last point is End exactly.
func (p Problem) Time(i int) float64 {
	if i >= p.Steps {
		return p.End
	}
	return p.Start + float64(i)*p.StepSize()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
