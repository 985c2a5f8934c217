package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/thermosim/internal/dynamo"
)

// Params is the physical parameter set of a thermostatically controlled room.
type Params struct {
	CoilTemp      float64 `yaml:"coil_temp" json:"coil_temp"`
	OutsideTemp   float64 `yaml:"outside_temp" json:"outside_temp"`
	WallCoeff     float64 `yaml:"wall_coeff" json:"wall_coeff"`
	CoilCoeff     float64 `yaml:"coil_coeff" json:"coil_coeff"`
	LowThreshold  float64 `yaml:"low_threshold" json:"low_threshold"`
	HighThreshold float64 `yaml:"high_threshold" json:"high_threshold"`
	Mode          Mode    `yaml:"mode" json:"mode"`
}

func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"coil temperature":    p.CoilTemp,
		"outside temperature": p.OutsideTemp,
		"wall coefficient":    p.WallCoeff,
		"coil coefficient":    p.CoilCoeff,
		"low threshold":       p.LowThreshold,
		"high threshold":      p.HighThreshold,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrConfiguration, name)
		}
	}
	if p.WallCoeff < 0 {
		return fmt.Errorf("%w: wall coefficient %g is negative", dynamo.ErrConfiguration, p.WallCoeff)
	}
	if p.CoilCoeff < 0 {
		return fmt.Errorf("%w: coil coefficient %g is negative", dynamo.ErrConfiguration, p.CoilCoeff)
	}
	if p.LowThreshold > p.HighThreshold {
		return fmt.Errorf("%w: low threshold %g above high threshold %g",
			dynamo.ErrConfiguration, p.LowThreshold, p.HighThreshold)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %d", dynamo.ErrConfiguration, p.Mode)
	}
	return nil
}

// Room is a hybrid automaton: continuous room temperature driven by a relay
// that switches a coil on and off with hysteresis.
//
// Rate is the only call that keeps cycle statistics. RateStatePartial takes
// the same switching decision but commits only the relay state. A Room is not
// safe for concurrent use.
type Room struct {
	params Params
	state  ActivationState

	lastOn       float64
	actionTime   float64
	periodAnchor float64
	anchored     bool
	period       float64
	periodSet    bool

	observers  []observerSlot
	observerID uint64
}

// NewRoom validates params and sets the relay state from the initial
// temperature.
func NewRoom(params Params, initialTemp float64) (*Room, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(initialTemp) || math.IsInf(initialTemp, 0) {
		return nil, fmt.Errorf("%w: initial temperature is not finite", dynamo.ErrConfiguration)
	}

	r := &Room{params: params, state: StateIdle}
	switch params.Mode {
	case ModeCool:
		if initialTemp > params.LowThreshold {
			r.state = StateActing
		}
	case ModeHeat:
		if initialTemp < params.HighThreshold {
			r.state = StateActing
		}
	}
	return r, nil
}

// decide is the switching rule shared by every capability.
func decide(mode Mode, state ActivationState, temp, low, high float64) (ActivationState, Transition) {
	switch mode {
	case ModeCool:
		if state == StateActing && temp <= low {
			return StateIdle, TransitionOff
		}
		if state == StateIdle && temp > high {
			return StateActing, TransitionOn
		}
	case ModeHeat:
		if state == StateActing && temp >= high {
			return StateIdle, TransitionOff
		}
		if state == StateIdle && temp < low {
			return StateActing, TransitionOn
		}
	}
	return state, TransitionNone
}

// Peek reports the state and transition an evaluation at temp would commit,
// without committing it.
func (r *Room) Peek(temp float64) (ActivationState, Transition) {
	return decide(r.params.Mode, r.state, temp, r.params.LowThreshold, r.params.HighThreshold)
}

// Rate returns dTr/dt at (t, temp) and commits any switching, including the
// cycle bookkeeping. The returned rate uses the post-switch regime.
func (r *Room) Rate(t, temp float64) float64 {
	next, tr := r.Peek(temp)
	switch tr {
	case TransitionOn:
		r.lastOn = t
	case TransitionOff:
		r.actionTime += t - r.lastOn
		if !r.periodSet {
			if !r.anchored {
				r.periodAnchor = t
				r.anchored = true
			} else {
				r.period = t - r.periodAnchor
				r.periodSet = true
			}
		}
	}
	r.commit(t, temp, next, tr, false)
	return r.drift(temp)
}

// RateTimePartial is zero: the rate has no explicit time dependence.
func (r *Room) RateTimePartial(t, temp float64) float64 {
	return 0
}

// RateStatePartial returns d(dTr/dt)/dTr. It switches the relay like Rate
// does but leaves the cycle statistics untouched.
func (r *Room) RateStatePartial(t, temp float64) float64 {
	next, tr := r.Peek(temp)
	r.commit(t, temp, next, tr, true)
	if r.state == StateActing {
		return -(r.params.WallCoeff + r.params.CoilCoeff)
	}
	return -r.params.WallCoeff
}

func (r *Room) commit(t, temp float64, next ActivationState, tr Transition, stateOnly bool) {
	r.state = next
	if tr == TransitionNone {
		return
	}
	ev := Event{Time: t, Temp: temp, Transition: tr, StateOnly: stateOnly}
	for _, slot := range r.observers {
		slot.o.OnTransition(ev)
	}
}

func (r *Room) drift(temp float64) float64 {
	d := r.params.WallCoeff * (r.params.OutsideTemp - temp)
	if r.state == StateActing {
		d += r.params.CoilCoeff * (r.params.CoilTemp - temp)
	}
	return d
}

// SteadyState is the temperature the room settles at in the given state.
func (r *Room) SteadyState(s ActivationState) float64 {
	p := r.params
	if s == StateActing {
		k := p.WallCoeff + p.CoilCoeff
		if k == 0 {
			return math.NaN()
		}
		return (p.WallCoeff*p.OutsideTemp + p.CoilCoeff*p.CoilTemp) / k
	}
	if p.WallCoeff == 0 {
		return math.NaN()
	}
	return p.OutsideTemp
}

// Period returns the length of the first full switching cycle, once two
// switch-offs have been observed by Rate.
func (r *Room) Period() (float64, bool) {
	return r.period, r.periodSet
}

// ActionTime is the total duration of completed ACTING intervals.
func (r *Room) ActionTime() float64 { return r.actionTime }

func (r *Room) State() ActivationState { return r.state }
func (r *Room) Mode() Mode             { return r.params.Mode }
func (r *Room) Params() Params         { return r.params }

// ResetTimers clears the cycle statistics for a new run on the same room.
// The relay state is kept.
func (r *Room) ResetTimers() {
	r.lastOn = 0
	r.actionTime = 0
	r.periodAnchor = 0
	r.anchored = false
	r.period = 0
	r.periodSet = false
}

type observerSlot struct {
	id uint64
	o  TransitionObserver
}

// AddObserver registers o for every committed switch and returns a function
// that detaches it. Detaching twice is a no-op. Observers are matched by
// registration, so any type can be registered, comparable or not.
func (r *Room) AddObserver(o TransitionObserver) (detach func()) {
	r.observerID++
	id := r.observerID
	r.observers = append(r.observers, observerSlot{id: id, o: o})
	return func() {
		for i, slot := range r.observers {
			if slot.id == id {
				r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
				return
			}
		}
	}
}
