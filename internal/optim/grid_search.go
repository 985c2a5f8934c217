package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/thermosim/internal/automation"
	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/experiment"
)

// Objective scores a finished run; lower is better.
type Objective func(res experiment.Result, cfg *config.Config) float64

var Objectives = map[string]Objective{
	"overshoot": func(res experiment.Result, _ *config.Config) float64 {
		return res.Summary["overshoot"]
	},
	"discomfort": func(res experiment.Result, _ *config.Config) float64 {
		return 1 - res.Summary["comfort"]
	},
	// switches per unit time
	"switching": func(res experiment.Result, cfg *config.Config) float64 {
		return float64(len(res.Events)) / cfg.Horizon
	},
	"action_time": func(res experiment.Result, _ *config.Config) float64 {
		return res.ActionTime
	},
}

func ObjectiveNames() []string {
	names := make([]string, 0, len(Objectives))
	for name := range Objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GridSearch tries every combination of the given parameter values. Names
// are those accepted by automation.SetParam.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs method on a fresh room for every grid point and returns the
// point with the lowest objective. Points whose configuration is invalid or
// whose run fails are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	method string,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%w: %d parameters but %d ranges", dynamo.ErrConfiguration, len(g.paramNames), len(g.ranges))
	}
	integ, err := registry.GetIntegrator(method, experiment.SettingsFrom(base.Adaptive))
	if err != nil {
		return nil, 0, err
	}
	for _, name := range g.paramNames {
		if err := automation.SetParam(base.Clone(), name, 0); err != nil {
			return nil, 0, err
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	eval := func(current map[string]float64) {
		cfg := base.Clone()
		for name, v := range current {
			_ = automation.SetParam(cfg, name, v)
		}
		if cfg.Validate() != nil {
			return
		}
		room, err := cfg.NewRoom()
		if err != nil {
			return
		}
		res := experiment.Run(room, integ, cfg.Problem(), nil)
		if !res.OK() {
			return
		}
		if val := objective(res, cfg); val < best {
			best = val
			bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				bestParams[k] = v
			}
		}
	}

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), eval); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("%w: no grid point produced a valid run", dynamo.ErrConfiguration)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval func(map[string]float64),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		eval(current)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, eval); err != nil {
			return err
		}
	}
	return nil
}
