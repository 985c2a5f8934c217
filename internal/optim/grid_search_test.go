package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/experiment"
)

func TestGridSearchOvershoot(t *testing.T) {
	g := NewGridSearch([]string{"low_threshold"}, [][]float64{{21, 19, 20}})

	best, val, err := g.Search(context.Background(), config.DefaultConfig(), experiment.NewRegistry(), "euler", Objectives["overshoot"])
	if err != nil {
		t.Fatal(err)
	}
	if best["low_threshold"] != 19 {
		t.Errorf("expected low_threshold 19, got %v", best)
	}
	// the room starts at 18, one degree under the lowest band
	if math.Abs(val-1) > 1e-9 {
		t.Errorf("expected overshoot 1, got %v", val)
	}
}

func TestGridSearchWideBandSwitchesLess(t *testing.T) {
	g := NewGridSearch([]string{"high_threshold"}, [][]float64{{23, 26, 24}})

	best, _, err := g.Search(context.Background(), config.DefaultConfig(), experiment.NewRegistry(), "rk4", Objectives["switching"])
	if err != nil {
		t.Fatal(err)
	}
	if best["high_threshold"] != 26 {
		t.Errorf("expected the widest band, got %v", best)
	}
}

func TestGridSearchSkipsInvalidPoints(t *testing.T) {
	// high below low is rejected by validation
	g := NewGridSearch([]string{"high_threshold"}, [][]float64{{20, 25}})

	best, _, err := g.Search(context.Background(), config.DefaultConfig(), experiment.NewRegistry(), "euler", Objectives["discomfort"])
	if err != nil {
		t.Fatal(err)
	}
	if best["high_threshold"] != 25 {
		t.Errorf("expected 25, got %v", best)
	}
}

func TestGridSearchErrors(t *testing.T) {
	reg := experiment.NewRegistry()
	base := config.DefaultConfig()

	_, _, err := NewGridSearch([]string{"low_threshold"}, nil).Search(context.Background(), base, reg, "euler", Objectives["overshoot"])
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for missing range, got %v", err)
	}

	_, _, err = NewGridSearch([]string{"colour"}, [][]float64{{1}}).Search(context.Background(), base, reg, "euler", Objectives["overshoot"])
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for unknown parameter, got %v", err)
	}

	_, _, err = NewGridSearch([]string{"high_threshold"}, [][]float64{{10}}).Search(context.Background(), base, reg, "euler", Objectives["overshoot"])
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error when nothing runs, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = NewGridSearch([]string{"low_threshold"}, [][]float64{{20}}).Search(ctx, base, reg, "euler", Objectives["overshoot"])
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestObjectiveNames(t *testing.T) {
	names := ObjectiveNames()
	if len(names) != len(Objectives) || names[0] != "action_time" {
		t.Errorf("unexpected names %v", names)
	}
}
