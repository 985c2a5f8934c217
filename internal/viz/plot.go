package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/thermosim/internal/experiment"
)

// PlotTerminal draws every result with a trajectory on one ASCII chart.
// Series are resampled onto a common grid of width points, so methods with
// different step counts line up.
func PlotTerminal(results []experiment.Result, label func(string) string, width, height int, caption string) string {
	return PlotBand(results, label, width, height, caption, math.NaN(), math.NaN())
}

// PlotBand is PlotTerminal with the hysteresis thresholds drawn as flat lines
// in the theme's band colour. NaN thresholds are left out.
func PlotBand(results []experiment.Result, label func(string) string, width, height int, caption string, low, high float64) string {
	var (
		data    [][]float64
		colors  []asciigraph.AnsiColor
		legends []string
	)
	for i, r := range results {
		if len(r.Trajectory) < 2 {
			continue
		}
		data = append(data, r.Trajectory.Resample(width))
		colors = append(colors, CurrentTheme.SeriesColor(i))
		name := r.Method
		if label != nil {
			name = label(r.Method)
		}
		legends = append(legends, name)
	}
	if len(data) == 0 {
		return ""
	}

	for _, level := range []struct {
		name  string
		value float64
	}{{"low", low}, {"high", high}} {
		if math.IsNaN(level.value) {
			continue
		}
		line := make([]float64, width)
		for i := range line {
			line[i] = level.value
		}
		data = append(data, line)
		colors = append(colors, CurrentTheme.BandLine)
		legends = append(legends, level.name)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// PlotSpectrum draws a power spectrum, skipping the DC bin.
func PlotSpectrum(ps []float64, width, height int, caption string) string {
	if len(ps) < 2 {
		return ""
	}
	return asciigraph.Plot(ps[1:],
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
