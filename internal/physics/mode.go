package physics

import (
	"fmt"
	"strings"
)

// Mode selects which side of the hysteresis band the unit acts on.
type Mode uint8

const (
	// ModeCool switches on above the high threshold and off at the low one.
	ModeCool Mode = iota + 1
	// ModeHeat switches on below the low threshold and off at the high one.
	ModeHeat
)

func (m Mode) String() string {
	switch m {
	case ModeCool:
		return "cool"
	case ModeHeat:
		return "heat"
	default:
		return "unknown"
	}
}

func (m Mode) Valid() bool {
	return m == ModeCool || m == ModeHeat
}

// ParseMode accepts "cool" or "heat" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cool":
		return ModeCool, nil
	case "heat":
		return ModeHeat, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want cool or heat)", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ActivationState is the discrete state of the relay.
type ActivationState uint8

const (
	StateIdle ActivationState = iota
	StateActing
)

func (s ActivationState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateActing:
		return "ACTING"
	default:
		return "UNKNOWN"
	}
}

// Transition is the switching outcome of a single evaluation.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionOn
	TransitionOff
)

func (t Transition) String() string {
	switch t {
	case TransitionOn:
		return "on"
	case TransitionOff:
		return "off"
	default:
		return "none"
	}
}

func (t Transition) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Transition) UnmarshalText(b []byte) error {
	switch string(b) {
	case "on":
		*t = TransitionOn
	case "off":
		*t = TransitionOff
	case "none", "":
		*t = TransitionNone
	default:
		return fmt.Errorf("unknown transition %q", b)
	}
	return nil
}
