// Package physics provides the relay-controlled room model.
//
// [Room] implements [dynamo.Differentiable]: a continuous room temperature
// relaxing towards the outside air, plus coil drive while the relay is
// ACTING. The relay switches with hysteresis between a low and a high
// threshold, in the direction given by [Mode]:
//
//   - [ModeCool]: on above the high threshold, off at or below the low one
//   - [ModeHeat]: on below the low threshold, off at or above the high one
//
// Every Rate call is a switching opportunity, including calls an integrator
// makes at trial points. Cycle statistics ([Room.Period], [Room.ActionTime])
// are therefore a property of the integrator's call pattern as much as of the
// physics.
//
// # Reuse
//
//	room, err := physics.NewRoom(params, 18)
//	traj, _ := integrators.NewEuler().Integrate(room, problem)
//	period, ok := room.Period()
//	room.ResetTimers() // relay state is kept
package physics
