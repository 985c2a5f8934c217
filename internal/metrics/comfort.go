package metrics

import (
	"math"

	"github.com/san-kum/thermosim/internal/dynamo"
)

// Metric summarises a trajectory sample by sample.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

// Summarize feeds every sample of tr to each metric after resetting it.
func Summarize(tr dynamo.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range tr {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// MeanTemp is the time-weighted (trapezoidal) mean temperature.
type MeanTemp struct {
	prev     dynamo.Sample
	started  bool
	area     float64
	duration float64
}

func NewMeanTemp() *MeanTemp {
	return &MeanTemp{}
}

func (m *MeanTemp) Name() string { return "mean_temp" }

func (m *MeanTemp) Observe(s dynamo.Sample) {
	if m.started {
		dt := s.T - m.prev.T
		m.area += dt * (s.Y + m.prev.Y) / 2
		m.duration += dt
	}
	m.prev = s
	m.started = true
}

func (m *MeanTemp) Value() float64 {
	if m.duration == 0 {
		return m.prev.Y
	}
	return m.area / m.duration
}

func (m *MeanTemp) Reset() {
	*m = MeanTemp{}
}

// Overshoot is the largest excursion outside the hysteresis band.
type Overshoot struct {
	low, high float64
	worst     float64
}

func NewOvershoot(low, high float64) *Overshoot {
	return &Overshoot{low: low, high: high}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s dynamo.Sample) {
	o.worst = math.Max(o.worst, math.Max(s.Y-o.high, o.low-s.Y))
}

func (o *Overshoot) Value() float64 { return o.worst }

func (o *Overshoot) Reset() { o.worst = 0 }

// Comfort is the fraction of time spent inside the band, attributing each
// interval to its left sample.
type Comfort struct {
	low, high float64
	prev      dynamo.Sample
	started   bool
	inside    float64
	total     float64
}

func NewComfort(low, high float64) *Comfort {
	return &Comfort{low: low, high: high}
}

func (c *Comfort) Name() string { return "comfort" }

func (c *Comfort) Observe(s dynamo.Sample) {
	if c.started {
		dt := s.T - c.prev.T
		c.total += dt
		if c.prev.Y >= c.low && c.prev.Y <= c.high {
			c.inside += dt
		}
	}
	c.prev = s
	c.started = true
}

func (c *Comfort) Value() float64 {
	if c.total == 0 {
		return 0
	}
	return c.inside / c.total
}

func (c *Comfort) Reset() {
	c.prev, c.started, c.inside, c.total = dynamo.Sample{}, false, 0, 0
}
