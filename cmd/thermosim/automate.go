package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/automation"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/optim"
	"github.com/san-kum/thermosim/internal/viz"
)

var (
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepMethod string

	mcMethod  string
	mcPerturb float64
	mcTrials  int
	mcSeed    int64

	tuneMethod    string
	tuneObjective string
	tuneGrid      []string
)

func automationCommands() []*cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "run one method across a parameter range (from flags or a yaml file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "high_threshold", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 23, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 28, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "n", 6, "number of values")
	sweepCmd.Flags().StringVar(&sweepMethod, "method", "rk4", "integration method")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of comparisons",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a run with a perturbed initial temperature",
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().StringVar(&mcMethod, "method", "rk4", "integration method")
	mcCmd.Flags().Float64Var(&mcPerturb, "perturb", 2, "maximum initial temperature perturbation")
	mcCmd.Flags().IntVar(&mcTrials, "trials", 50, "number of trials")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 for time based)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search room parameters for the best objective",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&tuneMethod, "method", "rk4", "integration method")
	tuneCmd.Flags().StringVar(&tuneObjective, "objective", "switching",
		"objective to minimize: "+strings.Join(optim.ObjectiveNames(), ", "))
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", []string{"low_threshold=21,21.5,22", "high_threshold=23,24,25"},
		"parameter and its values, name=v1,v2,...")

	return []*cobra.Command{sweepCmd, scenarioCmd, mcCmd, tuneCmd}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps, Method: sweepMethod}
	if len(args) == 1 {
		if sweep, err = automation.LoadSweep(args[0]); err != nil {
			return err
		}
	}

	results, err := automation.RunSweep(cmd.Context(), cfg, sweep, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPERIOD\tACTION\tCOMFORT\tSTATUS\n", strings.ToUpper(sweep.Param))
	periods := make([]float64, 0, len(results))
	for _, r := range results {
		period := "-"
		if r.PeriodDetected {
			period = fmt.Sprintf("%.4f", r.Period)
			periods = append(periods, r.Period)
		}
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(w, "%.4f\t%s\t%.4f\t%.1f%%\t%s\n", r.Value, period, r.ActionTime, 100*r.Comfort, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(periods) > 1 {
		fmt.Printf("\nperiod %s\n", viz.SparklineChart(periods, len(periods)))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	steps, err := automation.RunScenario(cmd.Context(), sc, reg, logger)
	if err != nil {
		return err
	}
	for i, step := range steps {
		fmt.Println()
		fmt.Println(viz.Separator(60))
		fmt.Printf("step %d: %s mode, band [%g, %g], T0 = %g\n", i+1,
			step.Config.Room.Mode, step.Config.Room.LowThreshold, step.Config.Room.HighThreshold, step.Config.Room.InitialTemp)
		fmt.Print(viz.SummaryTable(step.Results, reg.Label))
		if err := save(step.Config, step.Results); err != nil {
			return err
		}
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mc := &automation.MonteCarloConfig{Method: mcMethod, Perturbation: mcPerturb, NumTrials: mcTrials, Seed: mcSeed}
	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, mc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	var sum float64
	var n int
	for _, r := range results {
		if r.PeriodDetected {
			sum += r.Period
			n++
		}
	}
	fmt.Printf("trials: %d, stable: %d, unstable: %d\n", len(results), stable, unstable)
	fmt.Printf("stable %s\n", viz.ProgressBar(float64(stable)/float64(max(len(results), 1)), 40))
	if n > 0 {
		fmt.Printf("mean period over %d cycling trials: %.4f\n", n, sum/float64(n))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	objective, ok := optim.Objectives[tuneObjective]
	if !ok {
		return fmt.Errorf("unknown objective %q (available: %v)", tuneObjective, optim.ObjectiveNames())
	}

	names := make([]string, 0, len(tuneGrid))
	ranges := make([][]float64, 0, len(tuneGrid))
	for _, entry := range tuneGrid {
		name, values, err := parseGrid(entry)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	best, val, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), cfg, experiment.NewRegistry(), tuneMethod, objective)
	if err != nil {
		return err
	}
	fmt.Printf("best %s: %.6f\n", tuneObjective, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func parseGrid(entry string) (string, []float64, error) {
	name, list, ok := strings.Cut(entry, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("grid %q: expected name=v1,v2,...", entry)
	}
	fields := strings.Split(list, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("grid %q: %w", entry, err)
		}
		values[i] = v
	}
	return name, values, nil
}
