package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/export"
	"github.com/san-kum/thermosim/internal/storage"
	"github.com/san-kum/thermosim/internal/viz"
)

func runMethod(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	integ, err := reg.GetIntegrator(args[0], experiment.SettingsFrom(cfg.Adaptive))
	if err != nil {
		return err
	}
	room, err := cfg.NewRoom()
	if err != nil {
		return err
	}

	rec := newRecorder()
	fmt.Printf("running %s on %s room...\n", reg.Label(args[0]), cfg.Room.Mode)
	res := experiment.Run(room, integ, cfg.Problem(), rec)
	flushRecorder(rec)
	if err := save(cfg, []experiment.Result{res}); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Printf("samples: %d\n", len(res.Trajectory))
	fmt.Println(export.Legend(reg.Label(res.Method), res))
	fmt.Println("\nmetrics:")
	for _, name := range []string{"mean_temp", "overshoot", "comfort"} {
		fmt.Printf("  %s: %.6f\n", name, res.Summary[name])
	}
	if chart := viz.PlotBand([]experiment.Result{res}, reg.Label, 80, 15, "temperature", cfg.Room.LowThreshold, cfg.Room.HighThreshold); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	return res.Err
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	results, reg, err := compare(cmd, cfg, args)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotBand(results, reg.Label, 80, 15, "temperature", cfg.Room.LowThreshold, cfg.Room.HighThreshold))
	fmt.Println()
	for _, r := range results {
		fmt.Println(export.Legend(reg.Label(r.Method), r))
	}
	fmt.Println()
	fmt.Print(viz.SummaryTable(results, reg.Label))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tTIME\tMODE\tBAND\tPERIOD\tACTION\tSTATUS")

	for _, run := range runs {
		period := "-"
		if run.PeriodDetected {
			period = fmt.Sprintf("%.4f", run.Period)
		}
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%s\t%.4f\t%s\n",
			run.ID,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Mode,
			run.Params.LowThreshold, run.Params.HighThreshold,
			period,
			run.ActionTime,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("samples: %d\n\n", len(tr))

	graph := asciigraph.Plot(tr.Resample(width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("temperature, band [%g, %g]", meta.Params.LowThreshold, meta.Params.HighThreshold)),
	)
	fmt.Println(graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, tr)
}

// compareAll is the shared front half of the file-producing commands.
func compareAll(cmd *cobra.Command) (*config.Config, []experiment.Result, *experiment.Registry, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	results, reg, err := compare(cmd, cfg, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, results, reg, nil
}

func writeChart(cmd *cobra.Command, args []string) error {
	cfg, results, reg, err := compareAll(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Room temperature, %s mode", cfg.Room.Mode)
	chart := export.NewChart(title, cfg.Room.LowThreshold, cfg.Room.HighThreshold, reg.Label)
	if err := chart.Write(args[0], results); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func writeWorkbook(cmd *cobra.Command, args []string) error {
	cfg, results, reg, err := compareAll(cmd)
	if err != nil {
		return err
	}
	return writeFile(args[0], func(f *os.File) error {
		return export.WriteWorkbook(f, cfg, results, reg.Label)
	})
}

func writeReport(cmd *cobra.Command, args []string) error {
	cfg, results, reg, err := compareAll(cmd)
	if err != nil {
		return err
	}
	return writeFile(args[0], func(f *os.File) error {
		return export.WriteReport(f, cfg, results, reg.Label)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
