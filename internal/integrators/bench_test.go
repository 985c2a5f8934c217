package integrators

import (
	"testing"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

func benchRoom(b *testing.B) *physics.Room {
	room, err := physics.NewRoom(physics.Params{
		CoilTemp:      35,
		OutsideTemp:   15,
		WallCoeff:     0.03,
		CoilCoeff:     0.1,
		LowThreshold:  22,
		HighThreshold: 24,
		Mode:          physics.ModeHeat,
	}, 18)
	if err != nil {
		b.Fatal(err)
	}
	return room
}

func benchMethod(b *testing.B, m dynamo.Integrator) {
	p := dynamo.Problem{Start: 0, End: 100, Steps: 500, Initial: 18}
	room := benchRoom(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		room.ResetTimers()
		if _, err := m.Integrate(room, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEuler(b *testing.B)              { benchMethod(b, NewEuler()) }
func BenchmarkTaylor2(b *testing.B)            { benchMethod(b, NewTaylor2()) }
func BenchmarkTrapezium(b *testing.B)          { benchMethod(b, NewTrapezium()) }
func BenchmarkMean(b *testing.B)               { benchMethod(b, NewMean()) }
func BenchmarkRK4(b *testing.B)                { benchMethod(b, NewRK4()) }
func BenchmarkPredictorCorrector(b *testing.B) { benchMethod(b, NewPredictorCorrector()) }

func BenchmarkRKF45(b *testing.B) {
	p := dynamo.Problem{Start: 0, End: 100, Initial: 18}
	room := benchRoom(b)
	m := NewRKF45(0.1, 0.01, 0.1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		room.ResetTimers()
		_, _ = m.Integrate(room, p)
	}
}
