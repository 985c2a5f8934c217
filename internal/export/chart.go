package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/thermosim/internal/experiment"
)

// Chart draws temperature against time for several methods, with the
// hysteresis band as dashed lines.
type Chart struct {
	Title  string
	Low    float64
	High   float64
	Label  Labeler
	Width  vg.Length
	Height vg.Length
}

func NewChart(title string, low, high float64, label Labeler) *Chart {
	return &Chart{
		Title:  title,
		Low:    low,
		High:   high,
		Label:  label,
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

var chartFormats = map[string]bool{".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true, ".eps": true}

// Write renders the chart to path; the format follows the file extension.
func (c *Chart) Write(path string, results []experiment.Result) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !chartFormats[ext] {
		return fmt.Errorf("unsupported chart format %q", ext)
	}
	p, err := c.Plot(results)
	if err != nil {
		return err
	}
	return p.Save(c.Width, c.Height, path)
}

func (c *Chart) Plot(results []experiment.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Temperature"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var start, end float64
	for i, r := range results {
		if len(r.Trajectory) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(r.Trajectory))
		for j, s := range r.Trajectory {
			pts[j].X, pts[j].Y = s.T, s.Y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Method, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(Legend(c.Label.label(r.Method), r), line)

		s, e := r.Trajectory.Span()
		if i == 0 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	if end > start {
		for _, level := range []float64{c.Low, c.High} {
			band, err := plotter.NewLine(plotter.XYs{{X: start, Y: level}, {X: end, Y: level}})
			if err != nil {
				return nil, err
			}
			band.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			band.Color = plotutil.Color(len(results))
			p.Add(band)
		}
	}
	return p, nil
}
