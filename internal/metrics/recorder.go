package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

const metricPrefix = "thermosim_"

// Capability labels for rate evaluations.
const (
	CapabilityRate         = "rate"
	CapabilityTimePartial  = "time_partial"
	CapabilityStatePartial = "state_partial"
)

// Recorder collects per-method evaluation and switching counters on its own
// registry, so several recorders can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	evaluations *prometheus.CounterVec
	transitions *prometheus.CounterVec
	period      *prometheus.GaugeVec
	actionTime  *prometheus.GaugeVec
	runDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_evaluations_total",
				Help: "Model evaluations by integration method and capability",
			},
			[]string{"method", "capability"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "transitions_total",
				Help: "Relay switches by method, direction and the capability that committed them",
			},
			[]string{"method", "direction", "source"},
		),
		period: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "period_seconds",
				Help: "First detected switching period of the last run",
			},
			[]string{"method"},
		),
		actionTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "action_time_seconds",
				Help: "Cumulative acting time of the last run",
			},
			[]string{"method"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "run_duration_seconds",
				Help:    "Wall time of integration runs",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"method"},
		),
	}
	r.registry.MustRegister(
		r.evaluations,
		r.transitions,
		r.period,
		r.actionTime,
		r.runDuration,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Instrument wraps sys so that every capability call is counted under
// method. A Differentiable system stays Differentiable.
func (r *Recorder) Instrument(method string, sys dynamo.System) dynamo.System {
	c := counted{
		sys:  sys,
		rate: r.evaluations.WithLabelValues(method, CapabilityRate),
	}
	d, ok := sys.(dynamo.Differentiable)
	if !ok {
		return &c
	}
	return &countedDifferentiable{
		counted: c,
		d:       d,
		ft:      r.evaluations.WithLabelValues(method, CapabilityTimePartial),
		fy:      r.evaluations.WithLabelValues(method, CapabilityStatePartial),
	}
}

type counted struct {
	sys  dynamo.System
	rate prometheus.Counter
}

func (c *counted) Rate(t, y float64) float64 {
	c.rate.Inc()
	return c.sys.Rate(t, y)
}

type countedDifferentiable struct {
	counted
	d      dynamo.Differentiable
	ft, fy prometheus.Counter
}

func (c *countedDifferentiable) RateTimePartial(t, y float64) float64 {
	c.ft.Inc()
	return c.d.RateTimePartial(t, y)
}

func (c *countedDifferentiable) RateStatePartial(t, y float64) float64 {
	c.fy.Inc()
	return c.d.RateStatePartial(t, y)
}

// Observer counts relay switches under method.
func (r *Recorder) Observer(method string) physics.TransitionObserver {
	return transitionCounter{vec: r.transitions, method: method}
}

type transitionCounter struct {
	vec    *prometheus.CounterVec
	method string
}

func (o transitionCounter) OnTransition(ev physics.Event) {
	source := CapabilityRate
	if ev.StateOnly {
		source = CapabilityStatePartial
	}
	o.vec.WithLabelValues(o.method, ev.Transition.String(), source).Inc()
}

// ObserveRun records the statistics read from the model after a run. An
// undetected period removes the method's period series.
func (r *Recorder) ObserveRun(method string, period float64, detected bool, actionTime float64, elapsed time.Duration) {
	if detected {
		r.period.WithLabelValues(method).Set(period)
	} else {
		r.period.DeleteLabelValues(method)
	}
	r.actionTime.WithLabelValues(method).Set(actionTime)
	r.runDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Evaluations returns the number of capability calls counted for method.
func (r *Recorder) Evaluations(method, capability string) float64 {
	return counterValue(r.evaluations.WithLabelValues(method, capability))
}

// Transitions returns switches in direction ("on" or "off") committed by Rate.
func (r *Recorder) Transitions(method, direction string) float64 {
	return counterValue(r.transitions.WithLabelValues(method, direction, CapabilityRate))
}

// WriteTextfile writes all series in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
