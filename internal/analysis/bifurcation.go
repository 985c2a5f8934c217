package analysis

import (
	"math"
	"sort"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

// CyclePoint holds the settled turning points of the temperature for one
// parameter value.
type CyclePoint struct {
	Param  float64
	Values []float64
}

// RoomFactory builds the model for one parameter value.
type RoomFactory func(param float64) (*physics.Room, error)

// CycleDiagram sweeps a parameter over [paramMin, paramMax] and records the
// distinct local extrema of the temperature after transient. A relay cycle
// shows two values, a room that settles without switching shows none.
func CycleDiagram(
	build RoomFactory,
	integ dynamo.Integrator,
	p dynamo.Problem,
	paramMin, paramMax float64,
	paramSteps int,
	transient float64,
) ([]CyclePoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]CyclePoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		room, err := build(param)
		if err != nil {
			return nil, err
		}
		tr, err := integ.Integrate(room, p)
		if err != nil {
			return nil, err
		}
		results = append(results, CyclePoint{
			Param:  param,
			Values: TurningPoints(tr, p.Start+transient),
		})
	}
	return results, nil
}

// TurningPoints returns the distinct local extrema of tr after time from,
// quantized to 1e-3.
func TurningPoints(tr dynamo.Trajectory, from float64) []float64 {
	seen := make(map[int64]bool)
	values := make([]float64, 0)
	for i := 1; i+1 < len(tr); i++ {
		if tr[i].T < from {
			continue
		}
		prev, cur, next := tr[i-1].Y, tr[i].Y, tr[i+1].Y
		if (cur > prev && cur >= next) || (cur < prev && cur <= next) {
			key := int64(math.Round(cur * 1000))
			if !seen[key] {
				seen[key] = true
				values = append(values, cur)
			}
		}
	}
	sort.Float64s(values)
	return values
}

// CycleDiagramToASCII converts cycle data to ASCII art
func CycleDiagramToASCII(data []CyclePoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
			} else {
				minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
			}
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return render(canvas)
}
