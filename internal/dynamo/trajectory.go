package dynamo

import (
	"math"
	"sort"
)

// Sample is one accepted (time, value) point of a trajectory.
type Sample struct {
	T float64 `json:"t"`
	Y float64 `json:"y"`
}

// Trajectory is an ordered, growable sequence of samples. Fixed-step methods
// fill it on a uniform grid; the adaptive method grows it irregularly.
type Trajectory []Sample

func NewTrajectory(capacity int) Trajectory {
	return make(Trajectory, 0, capacity)
}

func (tr Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

func (tr Trajectory) Times() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.T
	}
	return out
}

func (tr Trajectory) Values() []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = s.Y
	}
	return out
}

// Last returns the final sample, or the zero Sample for an empty trajectory.
func (tr Trajectory) Last() Sample {
	if len(tr) == 0 {
		return Sample{}
	}
	return tr[len(tr)-1]
}

// Span returns the first and last sample times.
func (tr Trajectory) Span() (float64, float64) {
	if len(tr) == 0 {
		return 0, 0
	}
	return tr[0].T, tr[len(tr)-1].T
}

// Bounds returns the smallest and largest value.
func (tr Trajectory) Bounds() (lo, hi float64) {
	if len(tr) == 0 {
		return 0, 0
	}
	lo, hi = tr[0].Y, tr[0].Y
	for _, s := range tr[1:] {
		lo = math.Min(lo, s.Y)
		hi = math.Max(hi, s.Y)
	}
	return lo, hi
}

func (tr Trajectory) IsValid() bool {
	for _, s := range tr {
		if !finite(s.T) || !finite(s.Y) {
			return false
		}
	}
	return true
}

// Increasing reports whether sample times are strictly increasing.
func (tr Trajectory) Increasing() bool {
	for i := 1; i < len(tr); i++ {
		if tr[i].T <= tr[i-1].T {
			return false
		}
	}
	return true
}

// At linearly interpolates the value at time t, clamping outside the span.
func (tr Trajectory) At(t float64) float64 {
	n := len(tr)
	switch {
	case n == 0:
		return 0
	case t <= tr[0].T:
		return tr[0].Y
	case t >= tr[n-1].T:
		return tr[n-1].Y
	}
	j := sort.Search(n, func(i int) bool { return tr[i].T >= t })
	a, b := tr[j-1], tr[j]
	return a.Y + (b.Y-a.Y)*(t-a.T)/(b.T-a.T)
}

// Resample returns n uniformly spaced values across the trajectory span.
func (tr Trajectory) Resample(n int) []float64 {
	if n <= 0 || len(tr) == 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = tr[0].Y
		return out
	}
	start, end := tr.Span()
	dt := (end - start) / float64(n-1)
	for i := range out {
		out[i] = tr.At(start + float64(i)*dt)
	}
	return out
}
