package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/metrics"
	"github.com/san-kum/thermosim/internal/physics"
	"github.com/san-kum/thermosim/internal/storage"
	"github.com/san-kum/thermosim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	metricsFile string
	theme       string
	noSave      bool

	// room and run overrides
	mode        string
	coilTemp    float64
	outsideTemp float64
	wallCoeff   float64
	coilCoeff   float64
	lowTemp     float64
	highTemp    float64
	initialTemp float64
	horizon     float64
	steps       int
	tolerance   float64
	minStep     float64
	maxStep     float64

	strategy string
	width    int
	height   int
)

var logger = log.New(os.Stderr, "thermosim: ", 0)

func main() {
	rootCmd := &cobra.Command{
		Use:           "thermosim",
		Short:         "thermostat room model and integrator comparison",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          viewComparison,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".thermosim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this textfile")
	pf.StringVar(&theme, "theme", viz.ThemeThermal.Name, "terminal colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.BoolVar(&noSave, "no-save", false, "do not store runs")

	pf.StringVar(&mode, "mode", "heat", "thermostat mode (heat or cool)")
	pf.Float64Var(&coilTemp, "coil-temp", config.DefaultCoilTemp, "coil temperature")
	pf.Float64Var(&outsideTemp, "outside-temp", config.DefaultOutsideTemp, "outside temperature")
	pf.Float64Var(&wallCoeff, "wall-coeff", config.DefaultWallCoeff, "wall heat transfer coefficient")
	pf.Float64Var(&coilCoeff, "coil-coeff", config.DefaultCoilCoeff, "coil heat transfer coefficient")
	pf.Float64Var(&lowTemp, "low", config.DefaultLowThreshold, "low threshold")
	pf.Float64Var(&highTemp, "high", config.DefaultHighThreshold, "high threshold")
	pf.Float64Var(&initialTemp, "initial", config.DefaultInitialTemp, "initial room temperature")
	pf.Float64Var(&horizon, "time", config.DefaultHorizon, "final time")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "steps for fixed-step methods")
	pf.Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive error tolerance")
	pf.Float64Var(&minStep, "min-step", config.DefaultMinStep, "adaptive minimum step")
	pf.Float64Var(&maxStep, "max-step", config.DefaultMaxStep, "adaptive maximum step")

	runCmd := &cobra.Command{
		Use:   "run [method]",
		Short: "run one method",
		Args:  cobra.ExactArgs(1),
		RunE:  runMethod,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [method] ...",
		Short: "compare methods on the same room (all methods by default)",
		RunE:  compareMethods,
	}
	compareCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")

	viewCmd := &cobra.Command{
		Use:   "view [method] ...",
		Short: "interactive comparison viewer",
		RunE:  viewComparison,
	}
	rootCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")
	viewCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 15, "plot height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [file]",
		Short: "compare all methods and draw the chart (png, svg, pdf, eps, jpg)",
		Args:  cobra.ExactArgs(1),
		RunE:  writeChart,
	}
	chartCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")

	workbookCmd := &cobra.Command{
		Use:   "export-xlsx [file]",
		Short: "compare all methods and write a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  writeWorkbook,
	}
	workbookCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")

	reportCmd := &cobra.Command{
		Use:   "report [file]",
		Short: "compare all methods and write a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE:  writeReport,
	}
	reportCmd.Flags().StringVar(&strategy, "strategy", "shared", "model sharing: shared or isolated")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %s band [%g, %g] from %g\n",
					name, p.Room.Mode, p.Room.LowThreshold, p.Room.HighThreshold, p.Room.InitialTemp)
			}
			return nil
		},
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			for _, m := range reg.Methods() {
				fmt.Printf("  %-10s %s\n", m, reg.Label(m))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return config.Save(args[0], cfg)
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, viewCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		chartCmd, workbookCmd, reportCmd, presetsCmd, methodsCmd, initCmd)
	rootCmd.AddCommand(analysisCommands()...)
	rootCmd.AddCommand(automationCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

// resolveConfig starts from the config file, the preset or the defaults, in
// that order of preference, and applies every flag the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		m, err := physics.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.Room.Mode = m
	}
	for name, apply := range map[string]func(){
		"coil-temp":    func() { cfg.Room.CoilTemp = coilTemp },
		"outside-temp": func() { cfg.Room.OutsideTemp = outsideTemp },
		"wall-coeff":   func() { cfg.Room.WallCoeff = wallCoeff },
		"coil-coeff":   func() { cfg.Room.CoilCoeff = coilCoeff },
		"low":          func() { cfg.Room.LowThreshold = lowTemp },
		"high":         func() { cfg.Room.HighThreshold = highTemp },
		"initial":      func() { cfg.Room.InitialTemp = initialTemp },
		"time":         func() { cfg.Horizon = horizon },
		"steps":        func() { cfg.Steps = steps },
		"tol":          func() { cfg.Adaptive.Tolerance = tolerance },
		"min-step":     func() { cfg.Adaptive.MinStep = minStep },
		"max-step":     func() { cfg.Adaptive.MaxStep = maxStep },
	} {
		if flags.Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRecorder() *metrics.Recorder {
	if metricsFile == "" {
		return nil
	}
	return metrics.NewRecorder()
}

func flushRecorder(rec *metrics.Recorder) {
	if rec == nil {
		return
	}
	if err := rec.WriteTextfile(metricsFile); err != nil {
		logger.Printf("writing metrics: %v", err)
	}
}

// compare runs the requested methods, or the configured ones, or all of
// them, and stores every result unless --no-save is set.
func compare(cmd *cobra.Command, cfg *config.Config, methods []string) ([]experiment.Result, *experiment.Registry, error) {
	reg := experiment.NewRegistry()
	if len(methods) == 0 {
		methods = cfg.Methods
	}
	if len(methods) == 0 {
		methods = reg.Methods()
	}

	s, err := experiment.ParseStrategy(strategy)
	if err != nil {
		return nil, nil, err
	}

	comp := experiment.NewComparison(reg, experiment.SettingsFrom(cfg.Adaptive))
	comp.Strategy = s
	comp.Recorder = newRecorder()

	results, err := comp.Run(cmd.Context(), cfg.Params(), cfg.Room.InitialTemp, cfg.Problem(), methods)
	if err != nil {
		return nil, nil, err
	}
	flushRecorder(comp.Recorder)

	for _, r := range results {
		if !r.OK() {
			logger.Printf("%s: %v", r.Method, r.Err)
		}
	}
	if err := save(cfg, results); err != nil {
		return nil, nil, err
	}
	return results, reg, nil
}

func save(cfg *config.Config, results []experiment.Result) error {
	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, r := range results {
		id, err := st.Save(cfg.Params(), cfg.Problem(), r)
		if err != nil {
			return err
		}
		logger.Printf("saved %s as %s", r.Method, id)
	}
	return nil
}

func viewComparison(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	results, reg, err := compare(cmd, cfg, args)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s mode, band [%g, %g], T0 = %g",
		cfg.Room.Mode, cfg.Room.LowThreshold, cfg.Room.HighThreshold, cfg.Room.InitialTemp)
	p := tea.NewProgram(viz.NewViewer(title, results, reg.Label).WithBand(cfg.Room.LowThreshold, cfg.Room.HighThreshold), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
