package physics

// Event is one committed relay switch.
type Event struct {
	Time       float64    `json:"time"`
	Temp       float64    `json:"temp"`
	Transition Transition `json:"transition"`
	// StateOnly marks switches committed by RateStatePartial, which do not
	// feed the cycle statistics.
	StateOnly bool `json:"state_only,omitempty"`
}

type TransitionObserver interface {
	OnTransition(ev Event)
}

// SwitchLog records every event it observes.
type SwitchLog struct {
	Events []Event
}

func (l *SwitchLog) OnTransition(ev Event) {
	l.Events = append(l.Events, ev)
}

// Count returns how many events of kind tr were committed by Rate.
func (l *SwitchLog) Count(tr Transition) int {
	n := 0
	for _, ev := range l.Events {
		if ev.Transition == tr && !ev.StateOnly {
			n++
		}
	}
	return n
}

func (l *SwitchLog) Reset() {
	l.Events = l.Events[:0]
}
