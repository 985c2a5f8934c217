package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

const (
	DefaultCoilTemp      = 35.0
	DefaultOutsideTemp   = 15.0
	DefaultWallCoeff     = 0.03
	DefaultCoilCoeff     = 0.1
	DefaultLowThreshold  = 22.0
	DefaultHighThreshold = 24.0
	DefaultInitialTemp   = 18.0
	DefaultHorizon       = 100.0
	DefaultSteps         = 500
	DefaultTolerance     = 0.1
	DefaultMinStep       = 0.01
	DefaultMaxStep       = 0.1
)

type Config struct {
	Room     RoomConfig     `yaml:"room"`
	Horizon  float64        `yaml:"horizon"`
	Steps    int            `yaml:"steps"`
	Adaptive AdaptiveConfig `yaml:"adaptive"`
	Methods  []string       `yaml:"methods,omitempty"`
}

type RoomConfig struct {
	physics.Params `yaml:",inline"`
	InitialTemp    float64 `yaml:"initial_temp"`
}

type AdaptiveConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MinStep   float64 `yaml:"min_step"`
	MaxStep   float64 `yaml:"max_step"`
}

func DefaultConfig() *Config {
	return &Config{
		Room: RoomConfig{
			Params: physics.Params{
				CoilTemp:      DefaultCoilTemp,
				OutsideTemp:   DefaultOutsideTemp,
				WallCoeff:     DefaultWallCoeff,
				CoilCoeff:     DefaultCoilCoeff,
				LowThreshold:  DefaultLowThreshold,
				HighThreshold: DefaultHighThreshold,
				Mode:          physics.ModeHeat,
			},
			InitialTemp: DefaultInitialTemp,
		},
		Horizon: DefaultHorizon,
		Steps:   DefaultSteps,
		Adaptive: AdaptiveConfig{
			Tolerance: DefaultTolerance,
			MinStep:   DefaultMinStep,
			MaxStep:   DefaultMaxStep,
		},
	}
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// values it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Room.Params.Validate(); err != nil {
		return err
	}
	if err := c.Problem().Validate(); err != nil {
		return err
	}
	a := c.Adaptive
	if !(a.Tolerance > 0) || !(a.MinStep > 0) || !(a.MaxStep >= a.MinStep) {
		return fmt.Errorf("%w: adaptive settings need tolerance > 0 and 0 < min_step <= max_step",
			dynamo.ErrConfiguration)
	}
	return nil
}

func (c *Config) Params() physics.Params {
	return c.Room.Params
}

// Problem is the integration interval [0, Horizon] starting from the
// configured room temperature.
func (c *Config) Problem() dynamo.Problem {
	return dynamo.Problem{
		Start:   0,
		End:     c.Horizon,
		Steps:   c.Steps,
		Initial: c.Room.InitialTemp,
	}
}

// NewRoom builds a fresh model from the room section.
func (c *Config) NewRoom() (*physics.Room, error) {
	return physics.NewRoom(c.Room.Params, c.Room.InitialTemp)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Methods = append([]string(nil), c.Methods...)
	return &cp
}
