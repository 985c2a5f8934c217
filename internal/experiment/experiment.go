package experiment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/physics"
)

// Result is the outcome of one method on one problem. When the adaptive
// method gives up, Trajectory holds the samples accepted before Err.
type Result struct {
	Method         string             `json:"method"`
	Trajectory     dynamo.Trajectory  `json:"-"`
	Period         float64            `json:"period"`
	PeriodDetected bool               `json:"period_detected"`
	ActionTime     float64            `json:"action_time"`
	Events         []physics.Event    `json:"events,omitempty"`
	Summary        map[string]float64 `json:"summary,omitempty"`
	Elapsed        time.Duration      `json:"elapsed"`
	Err            error              `json:"-"`
}

func (r Result) OK() bool { return r.Err == nil }

// Run integrates room with integ over p and reads the cycle statistics
// afterwards. The caller owns the room: it is neither reset nor shared here.
func Run(room *physics.Room, integ dynamo.Integrator, p dynamo.Problem, rec *metrics.Recorder) Result {
	log := &physics.SwitchLog{}
	defer room.AddObserver(log)()

	var sys dynamo.System = room
	if rec != nil {
		defer room.AddObserver(rec.Observer(integ.Name()))()
		sys = rec.Instrument(integ.Name(), room)
	}

	start := time.Now()
	traj, err := integ.Integrate(sys, p)
	elapsed := time.Since(start)

	res := Result{
		Method:     integ.Name(),
		Trajectory: traj,
		ActionTime: room.ActionTime(),
		Events:     log.Events,
		Elapsed:    elapsed,
		Err:        err,
	}
	res.Period, res.PeriodDetected = room.Period()

	prm := room.Params()
	res.Summary = metrics.Summarize(traj,
		metrics.NewMeanTemp(),
		metrics.NewOvershoot(prm.LowThreshold, prm.HighThreshold),
		metrics.NewComfort(prm.LowThreshold, prm.HighThreshold),
	)

	if rec != nil {
		rec.ObserveRun(res.Method, res.Period, res.PeriodDetected, res.ActionTime, elapsed)
	}
	return res
}

// Strategy decides how a Comparison shares models between methods.
type Strategy int

const (
	// Shared runs every method on one model, resetting its timers in
	// between. The relay state left by one method is where the next starts.
	Shared Strategy = iota
	// Isolated gives every method a freshly constructed model and runs them
	// concurrently.
	Isolated
)

func (s Strategy) String() string {
	if s == Isolated {
		return "isolated"
	}
	return "shared"
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "shared":
		return Shared, nil
	case "isolated":
		return Isolated, nil
	}
	return Shared, fmt.Errorf("%w: unknown strategy %q", dynamo.ErrConfiguration, s)
}

// Comparison runs several methods against the same room and problem.
type Comparison struct {
	Registry *Registry
	Settings Settings
	Strategy Strategy
	Recorder *metrics.Recorder
}

func NewComparison(reg *Registry, s Settings) *Comparison {
	return &Comparison{Registry: reg, Settings: s}
}

// Run returns one Result per method in the given order. Method failures are
// reported in Result.Err; the returned error covers setup problems and
// cancellation.
func (c *Comparison) Run(ctx context.Context, params physics.Params, initial float64, p dynamo.Problem, methods []string) ([]Result, error) {
	integs := make([]dynamo.Integrator, len(methods))
	for i, name := range methods {
		integ, err := c.Registry.GetIntegrator(name, c.Settings)
		if err != nil {
			return nil, err
		}
		integs[i] = integ
	}

	if c.Strategy == Isolated {
		return c.runIsolated(ctx, params, initial, p, integs)
	}
	return c.runShared(ctx, params, initial, p, integs)
}

func (c *Comparison) runShared(ctx context.Context, params physics.Params, initial float64, p dynamo.Problem, integs []dynamo.Integrator) ([]Result, error) {
	room, err := physics.NewRoom(params, initial)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(integs))
	for _, integ := range integs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		room.ResetTimers()
		results = append(results, Run(room, integ, p, c.Recorder))
	}
	return results, nil
}

func (c *Comparison) runIsolated(ctx context.Context, params physics.Params, initial float64, p dynamo.Problem, integs []dynamo.Integrator) ([]Result, error) {
	if _, err := physics.NewRoom(params, initial); err != nil {
		return nil, err
	}

	results := make([]Result, len(integs))
	errs := make([]error, len(integs))

	var wg sync.WaitGroup
	for i, integ := range integs {
		wg.Add(1)
		go func(idx int, integ dynamo.Integrator) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			room, err := physics.NewRoom(params, initial)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = Run(room, integ, p, c.Recorder)
		}(i, integ)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
