package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseGrid(t *testing.T) {
	name, values, err := parseGrid("low_threshold=21, 21.5,22")
	if err != nil {
		t.Fatal(err)
	}
	if name != "low_threshold" || len(values) != 3 || values[1] != 21.5 {
		t.Errorf("unexpected grid %s %v", name, values)
	}

	for _, bad := range []string{"low_threshold", "=1,2", "high=", "high=1,x"} {
		if _, _, err := parseGrid(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&mode, "mode", "heat", "")
	cmd.Flags().Float64Var(&highTemp, "high", 24, "")
	cmd.Flags().IntVar(&steps, "steps", 500, "")
	return cmd
}

func TestResolveConfigFlagsOverridePreset(t *testing.T) {
	preset, configFile = "summer", ""
	defer func() { preset = "" }()

	cmd := testCommand()
	if err := cmd.Flags().Parse([]string{"--steps", "100"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != 100 {
		t.Errorf("expected steps from the flag, got %d", cfg.Steps)
	}
	if cfg.Room.Mode.String() != "cool" {
		t.Errorf("expected the preset mode to survive, got %s", cfg.Room.Mode)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	preset, configFile = "nope", ""
	defer func() { preset = "" }()
	if _, err := resolveConfig(testCommand()); err == nil {
		t.Error("expected unknown preset error")
	}

	preset = ""
	cmd := testCommand()
	if err := cmd.Flags().Parse([]string{"--high", "10"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected validation error for inverted band")
	}
}
