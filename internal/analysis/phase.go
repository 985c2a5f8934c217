package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/thermosim/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// PhasePortrait holds (temperature, dT/dt) pairs. The relay shows up as two
// branches joined at the thresholds.
type PhasePortrait struct {
	Points []Point
}

// GeneratePhasePortrait estimates dT/dt from tr with central differences
// (one-sided at both ends).
func GeneratePhasePortrait(tr dynamo.Trajectory) *PhasePortrait {
	if len(tr) < 2 {
		return nil
	}

	portrait := &PhasePortrait{Points: make([]Point, len(tr))}
	last := len(tr) - 1
	for i, s := range tr {
		lo, hi := max(i-1, 0), min(i+1, last)
		slope := (tr[hi].Y - tr[lo].Y) / (tr[hi].T - tr[lo].T)
		portrait.Points[i] = Point{X: s.Y, Y: slope}
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := newCanvas(width, height)

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// dT/dt = 0 axis
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return render(canvas)
}

// Crossings returns the interpolated times at which tr rises through level.
func Crossings(tr dynamo.Trajectory, level float64) []float64 {
	var out []float64
	for i := 1; i < len(tr); i++ {
		prev, curr := tr[i-1], tr[i]
		if prev.Y < level && curr.Y >= level {
			frac := (level - prev.Y) / (curr.Y - prev.Y)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			out = append(out, prev.T+frac*(curr.T-prev.T))
		}
	}
	return out
}

// CrossingPeriod is the mean spacing of upward crossings of level.
func CrossingPeriod(tr dynamo.Trajectory, level float64) (float64, bool) {
	c := Crossings(tr, level)
	if len(c) < 2 {
		return 0, false
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1), true
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	return canvas
}

func render(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
