// Package dynamo provides core simulation primitives for scalar ODEs.
//
// The package defines the shared vocabulary of the simulator:
//
//   - [System]: rate capability dy/dt = f(t, y)
//   - [Differentiable]: a System that also exposes df/dt and df/dy
//   - [Problem]: interval, step count and initial value
//   - [Trajectory]: ordered (time, value) samples produced by every method
//   - [Integrator]: numerical method interface
//
// # Example
//
//	room, _ := physics.NewRoom(params, 18)
//	traj, err := integrators.NewRK4().Integrate(room, dynamo.Problem{
//	    Start: 0, End: 100, Steps: 500, Initial: 18,
//	})
//	period, ok := room.Period()
//
// # Stateful systems
//
// A System may mutate itself on every Rate call. Integrators therefore never
// reorder, skip or parallelise stage evaluations, and a System must not be
// shared by concurrent runs.
package dynamo
