package config

import (
	"sort"

	"github.com/san-kum/thermosim/internal/physics"
)

var Presets = map[string]*Config{
	// The reference winter scenario.
	"winter": DefaultConfig(),
	"summer": {
		Room: RoomConfig{
			Params: physics.Params{
				CoilTemp: 10, OutsideTemp: 32, WallCoeff: 0.03, CoilCoeff: 0.1,
				LowThreshold: 22, HighThreshold: 24, Mode: physics.ModeCool,
			},
			InitialTemp: 28,
		},
		Horizon: 100, Steps: 500,
		Adaptive: AdaptiveConfig{Tolerance: 0.1, MinStep: 0.01, MaxStep: 0.1},
	},
	"narrow-band": {
		Room: RoomConfig{
			Params: physics.Params{
				CoilTemp: 35, OutsideTemp: 15, WallCoeff: 0.03, CoilCoeff: 0.1,
				LowThreshold: 22.9, HighThreshold: 23.1, Mode: physics.ModeHeat,
			},
			InitialTemp: 18,
		},
		Horizon: 60, Steps: 2000,
		Adaptive: AdaptiveConfig{Tolerance: 0.01, MinStep: 0.001, MaxStep: 0.05},
	},
	"leaky": {
		Room: RoomConfig{
			Params: physics.Params{
				CoilTemp: 40, OutsideTemp: 0, WallCoeff: 0.08, CoilCoeff: 0.2,
				LowThreshold: 20, HighThreshold: 22, Mode: physics.ModeHeat,
			},
			InitialTemp: 10,
		},
		Horizon: 100, Steps: 1000,
		Adaptive: AdaptiveConfig{Tolerance: 0.1, MinStep: 0.01, MaxStep: 0.1},
	},
	// The coil cannot lift the room above the band, so the relay never
	// switches off.
	"undersized": {
		Room: RoomConfig{
			Params: physics.Params{
				CoilTemp: 25, OutsideTemp: 5, WallCoeff: 0.05, CoilCoeff: 0.05,
				LowThreshold: 22, HighThreshold: 24, Mode: physics.ModeHeat,
			},
			InitialTemp: 12,
		},
		Horizon: 100, Steps: 500,
		Adaptive: AdaptiveConfig{Tolerance: 0.1, MinStep: 0.01, MaxStep: 0.1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
