package automation

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/experiment"
)

// Scenario defines a scripted sequence of comparisons
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides single
// parameters by name.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Params   map[string]float64 `yaml:"params"`
	Methods  []string           `yaml:"methods"`
	Strategy string             `yaml:"strategy"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// StepResult is the comparison produced by one scenario step.
type StepResult struct {
	Config  *config.Config
	Results []experiment.Result
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) ([]StepResult, error) {
	logger = orDiscard(logger)
	out := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Printf("scenario %s: step %d/%d", scenario.Name, i+1, len(scenario.Steps))

		cfg, err := step.config()
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}
		strategy := experiment.Shared
		if step.Strategy != "" {
			if strategy, err = experiment.ParseStrategy(step.Strategy); err != nil {
				return out, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		methods := cfg.Methods
		if len(methods) == 0 {
			methods = registry.Methods()
		}

		cmp := experiment.NewComparison(registry, experiment.SettingsFrom(cfg.Adaptive))
		cmp.Strategy = strategy
		results, err := cmp.Run(ctx, cfg.Params(), cfg.Room.InitialTemp, cfg.Problem(), methods)
		if err != nil {
			return out, fmt.Errorf("step %d run: %w", i+1, err)
		}
		out = append(out, StepResult{Config: cfg, Results: results})
	}
	return out, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", dynamo.ErrConfiguration, s.Preset)
		}
	}
	for name, v := range s.Params {
		if err := SetParam(cfg, name, v); err != nil {
			return nil, err
		}
	}
	if len(s.Methods) > 0 {
		cfg.Methods = s.Methods
	}
	return cfg, cfg.Validate()
}

// SetParam assigns one named parameter. Names follow the YAML keys of the
// room section plus the run settings.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "coil_temp":
		cfg.Room.CoilTemp = v
	case "outside_temp":
		cfg.Room.OutsideTemp = v
	case "wall_coeff":
		cfg.Room.WallCoeff = v
	case "coil_coeff":
		cfg.Room.CoilCoeff = v
	case "low_threshold":
		cfg.Room.LowThreshold = v
	case "high_threshold":
		cfg.Room.HighThreshold = v
	case "initial_temp":
		cfg.Room.InitialTemp = v
	case "horizon":
		cfg.Horizon = v
	case "tolerance":
		cfg.Adaptive.Tolerance = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrConfiguration, name)
	}
	return nil
}

// Sweep runs one method across a range of values of one parameter. Every
// value gets a freshly built room.
type Sweep struct {
	Param  string  `yaml:"param"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Steps  int     `yaml:"steps"`
	Method string  `yaml:"method"`
}

func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sweep Sweep
	if err := yaml.Unmarshal(data, &sweep); err != nil {
		return nil, err
	}
	return &sweep, nil
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value          float64
	Period         float64
	PeriodDetected bool
	ActionTime     float64
	Comfort        float64
	Err            error
}

// Values returns the swept parameter values, evenly spaced and including
// both ends.
func (s *Sweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	out := make([]float64, s.Steps)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	out[len(out)-1] = s.Max
	return out
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, base *config.Config, sweep *Sweep, registry *experiment.Registry, logger *log.Logger) ([]SweepResult, error) {
	logger = orDiscard(logger)

	integ, err := registry.GetIntegrator(sweep.Method, experiment.SettingsFrom(base.Adaptive))
	if err != nil {
		return nil, err
	}
	if err := SetParam(base.Clone(), sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg := base.Clone()
		_ = SetParam(cfg, sweep.Param, v)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		room, err := cfg.NewRoom()
		if err != nil {
			return results, err
		}

		res := experiment.Run(room, integ, cfg.Problem(), nil)
		results = append(results, SweepResult{
			Value:          v,
			Period:         res.Period,
			PeriodDetected: res.PeriodDetected,
			ActionTime:     res.ActionTime,
			Comfort:        res.Summary["comfort"],
			Err:            res.Err,
		})

		logger.Printf("sweep %d/%d: %s=%.4f", i+1, len(values), sweep.Param, v)
	}
	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Method       string
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID        int
	InitialTemp    float64
	Period         float64
	PeriodDetected bool
	ActionTime     float64
	Stable         bool // finished without error and stayed finite
}

// RunMonteCarlo repeats a run with the initial temperature perturbed
// uniformly by up to ±Perturbation.
func RunMonteCarlo(ctx context.Context, base *config.Config, cfg *MonteCarloConfig, registry *experiment.Registry, logger *log.Logger) ([]MonteCarloResult, error) {
	logger = orDiscard(logger)

	integ, err := registry.GetIntegrator(cfg.Method, experiment.SettingsFrom(base.Adaptive))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		run := base.Clone()
		run.Room.InitialTemp += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		room, err := run.NewRoom()
		if err != nil {
			return results, err
		}

		res := experiment.Run(room, integ, run.Problem(), nil)
		results = append(results, MonteCarloResult{
			TrialID:        trial,
			InitialTemp:    run.Room.InitialTemp,
			Period:         res.Period,
			PeriodDetected: res.PeriodDetected,
			ActionTime:     res.ActionTime,
			Stable:         res.Err == nil && res.Trajectory.IsValid(),
		})

		if (trial+1)%10 == 0 {
			logger.Printf("monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}
