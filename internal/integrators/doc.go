// Package integrators provides numerical methods for scalar initial value
// problems:
//
//   - [Euler]: explicit Euler, 1 evaluation per step
//   - [Taylor2]: second-order Taylor, f, df/dt and df/dy per step
//   - [Trapezium]: Heun's predictor-corrector, 2 evaluations per step
//   - [Mean]: modified Euler (midpoint), 2 evaluations per step
//   - [RK4]: classical Runge-Kutta, 4 evaluations per step
//   - [RKF45]: adaptive Runge-Kutta-Fehlberg 4(5), 6 evaluations per attempt
//   - [PredictorCorrector]: Adams-Bashforth-Moulton 4, RK4 bootstrap
//
// # Evaluation contract
//
// Systems may be stateful hybrid automata, so every Rate call is treated as
// an observable event. Each method evaluates its stages strictly in the order
// written in its formula, at the trial points the formula names, and never
// caches or skips a call the formula requires. Trial points that do not end
// up on the trajectory are evaluated all the same.
//
// A run owns its System: construct or reset it, integrate once, read its
// statistics, then reset or discard it before the next method.
//
// All methods validate the [dynamo.Problem] before the first evaluation.
// Fixed-step methods return Steps+1 samples on a uniform grid ending exactly
// at End.
package integrators
