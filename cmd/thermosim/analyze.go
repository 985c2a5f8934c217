package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/analysis"
	"github.com/san-kum/thermosim/internal/automation"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/physics"
	"github.com/san-kum/thermosim/internal/storage"
	"github.com/san-kum/thermosim/internal/viz"
)

var (
	cycleParam     string
	cycleMin       float64
	cycleMax       float64
	cycleSteps     int
	cycleMethod    string
	cycleTransient float64
)

func analysisCommands() []*cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "period estimates and spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "temperature against its rate of change",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	cyclesCmd := &cobra.Command{
		Use:   "cycles",
		Short: "settled cycle extremes across a parameter range",
		RunE:  cycleDiagram,
	}
	cyclesCmd.Flags().StringVar(&cycleParam, "param", "high_threshold", "parameter to vary")
	cyclesCmd.Flags().Float64Var(&cycleMin, "min", 23, "first value")
	cyclesCmd.Flags().Float64Var(&cycleMax, "max", 28, "last value")
	cyclesCmd.Flags().IntVar(&cycleSteps, "n", 20, "number of values")
	cyclesCmd.Flags().StringVar(&cycleMethod, "method", "rk4", "integration method")
	cyclesCmd.Flags().Float64Var(&cycleTransient, "transient", 30, "time to skip before collecting extremes")

	return []*cobra.Command{analyzeCmd, phaseCmd, cyclesCmd}
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s)\n", meta.ID, meta.Method)
	if meta.PeriodDetected {
		fmt.Printf("switching period:  %.4f\n", meta.Period)
	} else {
		fmt.Println("switching period:  not detected")
	}

	mid := (meta.Params.LowThreshold + meta.Params.HighThreshold) / 2
	if p, ok := analysis.CrossingPeriod(tr, mid); ok {
		fmt.Printf("crossing period:   %.4f (level %g)\n", p, mid)
	} else {
		fmt.Println("crossing period:   not detected")
	}
	if p, ok := analysis.DominantPeriod(tr); ok {
		fmt.Printf("spectral period:   %.4f\n", p)
	} else {
		fmt.Println("spectral period:   not detected")
	}

	if ps := analysis.PowerSpectrum(tr.Resample(256)); len(ps) > 1 {
		fmt.Println()
		fmt.Println(viz.PlotSpectrum(ps, 64, 10, "power spectrum"))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	portrait := analysis.GeneratePhasePortrait(tr)
	if portrait == nil {
		return fmt.Errorf("not enough samples for a phase portrait")
	}
	fmt.Println("x: temperature, y: dT/dt")
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}

func cycleDiagram(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := experiment.NewRegistry().GetIntegrator(cycleMethod, experiment.SettingsFrom(cfg.Adaptive))
	if err != nil {
		return err
	}

	build := func(v float64) (*physics.Room, error) {
		c := cfg.Clone()
		if err := automation.SetParam(c, cycleParam, v); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.NewRoom()
	}

	data, err := analysis.CycleDiagram(build, integ, cfg.Problem(), cycleMin, cycleMax, cycleSteps, cycleTransient)
	if err != nil {
		return err
	}
	fmt.Printf("%s from %g to %g\n", cycleParam, cycleMin, cycleMax)
	fmt.Print(analysis.CycleDiagramToASCII(data, 60, 20))
	return nil
}
