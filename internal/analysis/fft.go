package analysis

import (
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/thermosim/internal/dynamo"
)

// FFT is the discrete Fourier transform of real data. Any length works;
// powers of two take the radix-2 path.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// PowerSpectrum returns the magnitudes of the first len(data)/2 bins.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in tr. The
// trajectory is resampled onto a power-of-two grid and its mean removed
// before the transform. It reports false when the trajectory is too short or
// has no oscillating component.
func DominantPeriod(tr dynamo.Trajectory) (float64, bool) {
	if len(tr) < 4 {
		return 0, false
	}
	start, end := tr.Span()
	if end <= start {
		return 0, false
	}

	n := 1 << bits.Len(uint(len(tr)-1))
	data := tr.Resample(n)
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)
	for i := range data {
		data[i] -= mean
	}

	ps := PowerSpectrum(data)
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < 1e-9 {
		return 0, false
	}

	// Resample spaces n points over the span, so the sampling interval is
	// span/(n-1).
	dt := (end - start) / float64(n-1)
	return float64(n) * dt / float64(best), true
}
