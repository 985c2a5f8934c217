package experiment

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/integrators"
)

// Settings carries the options of methods that take any. Only the adaptive
// method does.
type Settings struct {
	Tolerance float64
	MinStep   float64
	MaxStep   float64
}

func SettingsFrom(a config.AdaptiveConfig) Settings {
	return Settings{Tolerance: a.Tolerance, MinStep: a.MinStep, MaxStep: a.MaxStep}
}

type method struct {
	label string
	build func(Settings) dynamo.Integrator
}

type Registry struct {
	methods map[string]method
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{methods: make(map[string]method)}

	r.Register("euler", "Euler", func(Settings) dynamo.Integrator { return integrators.NewEuler() })
	r.Register("taylor2", "Taylor 2", func(Settings) dynamo.Integrator { return integrators.NewTaylor2() })
	r.Register("trapezium", "Trapezium", func(Settings) dynamo.Integrator { return integrators.NewTrapezium() })
	r.Register("mean", "Mean", func(Settings) dynamo.Integrator { return integrators.NewMean() })
	r.Register("rk4", "RK4", func(Settings) dynamo.Integrator { return integrators.NewRK4() })
	r.Register("rkf45", "RKF", func(s Settings) dynamo.Integrator {
		return integrators.NewRKF45(s.Tolerance, s.MinStep, s.MaxStep)
	})
	r.Register("pc", "PC", func(Settings) dynamo.Integrator { return integrators.NewPredictorCorrector() })

	return r
}

// Register adds or replaces a method. New names are appended to the order
// returned by Methods.
func (r *Registry) Register(name, label string, build func(Settings) dynamo.Integrator) {
	if _, ok := r.methods[name]; !ok {
		r.order = append(r.order, name)
	}
	r.methods[name] = method{label: label, build: build}
}

func (r *Registry) GetIntegrator(name string, s Settings) (dynamo.Integrator, error) {
	m, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown method: %s", dynamo.ErrConfiguration, name)
	}
	return m.build(s), nil
}

// Label is the human-readable method name used in legends.
func (r *Registry) Label(name string) string {
	if m, ok := r.methods[name]; ok {
		return m.label
	}
	return name
}

// Methods lists the registered method names in registration order.
func (r *Registry) Methods() []string {
	return append([]string(nil), r.order...)
}
