package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
)

const summarySheet = "summary"

// WriteWorkbook writes a summary sheet with the run parameters and one row
// per method, followed by a time/temperature sheet per method.
func WriteWorkbook(w io.Writer, cfg *config.Config, results []experiment.Result, label Labeler) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	room := cfg.Room
	params := []struct {
		name  string
		value interface{}
	}{
		{"Mode", room.Mode.String()},
		{"Coil temperature (Tac)", room.CoilTemp},
		{"Outside temperature (Tout)", room.OutsideTemp},
		{"Wall coefficient (k)", room.WallCoeff},
		{"Coil coefficient (kac)", room.CoilCoeff},
		{"Low threshold", room.LowThreshold},
		{"High threshold", room.HighThreshold},
		{"Initial temperature", room.InitialTemp},
		{"Horizon", cfg.Horizon},
		{"Steps", cfg.Steps},
		{"Tolerance", cfg.Adaptive.Tolerance},
		{"Min step", cfg.Adaptive.MinStep},
		{"Max step", cfg.Adaptive.MaxStep},
	}

	_ = f.SetCellValue(summarySheet, "A1", "Thermostat simulation")
	for i, p := range params {
		row := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), p.name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), p.value)
	}

	header := len(params) + 4
	for col, title := range []string{"Method", "Period", "Action time", "Samples", "Comfort", "Mean temperature", "Error"} {
		cell, _ := excelize.CoordinatesToCellName(col+1, header)
		_ = f.SetCellValue(summarySheet, cell, title)
	}
	for i, r := range results {
		row := header + 1 + i
		values := []interface{}{
			label.label(r.Method),
			formatPeriod(r),
			r.ActionTime,
			len(r.Trajectory),
			r.Summary["comfort"],
			r.Summary["mean_temp"],
			errorText(r),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(summarySheet, cell, v)
		}
	}

	for _, r := range results {
		if _, err := f.NewSheet(r.Method); err != nil {
			return fmt.Errorf("sheet %s: %w", r.Method, err)
		}
		_ = f.SetCellValue(r.Method, "A1", "Time")
		_ = f.SetCellValue(r.Method, "B1", "Temperature")
		for i, s := range r.Trajectory {
			row := i + 2
			_ = f.SetCellValue(r.Method, fmt.Sprintf("A%d", row), s.T)
			_ = f.SetCellValue(r.Method, fmt.Sprintf("B%d", row), s.Y)
		}
	}

	return f.Write(w)
}
