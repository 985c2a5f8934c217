package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrConfiguration indicates an inconsistent physical parameter set.
	ErrConfiguration = errors.New("dynamo: invalid model configuration")

	// ErrDomain indicates an interval or step count no method can integrate.
	ErrDomain = errors.New("dynamo: invalid integration domain")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrNotDifferentiable indicates a method needs partial derivatives the
	// system does not provide.
	ErrNotDifferentiable = errors.New("dynamo: system does not expose partial derivatives")
)

// ConvergenceError reports where an adaptive run gave up. The trajectory
// computed up to that point is returned alongside it.
type ConvergenceError struct {
	Step     int
	Time     float64
	StepSize float64
	Wrapped  error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, h=%.3g): %v", e.Step, e.Time, e.StepSize, e.Wrapped)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Wrapped
}
