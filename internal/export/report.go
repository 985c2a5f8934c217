package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
)

// WriteReport renders a PDF with the run parameters, a results table and the
// switching events of each method.
func WriteReport(w io.Writer, cfg *config.Config, results []experiment.Result, label Labeler) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Thermostat Simulation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	room := cfg.Room
	info := []struct{ label, value string }{
		{"Mode", room.Mode.String()},
		{"Coil temperature", fmt.Sprintf("%g", room.CoilTemp)},
		{"Outside temperature", fmt.Sprintf("%g", room.OutsideTemp)},
		{"Coefficients (k, kac)", fmt.Sprintf("%g, %g", room.WallCoeff, room.CoilCoeff)},
		{"Band", fmt.Sprintf("[%g, %g]", room.LowThreshold, room.HighThreshold)},
		{"Initial temperature", fmt.Sprintf("%g", room.InitialTemp)},
		{"Horizon / steps", fmt.Sprintf("%g / %d", cfg.Horizon, cfg.Steps)},
		{"Adaptive (tol, min, max)", fmt.Sprintf("%g, %g, %g", cfg.Adaptive.Tolerance, cfg.Adaptive.MinStep, cfg.Adaptive.MaxStep)},
		{"Generated", time.Now().Format(time.RFC3339)},
	}

	pdf.SetFont("Arial", "", 10)
	for _, item := range info {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 7, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Results", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(30, 7, "Method", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Period", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Action time", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Samples", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Comfort", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 7, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = truncate(r.Err.Error(), 30)
		}
		pdf.CellFormat(30, 7, label.label(r.Method), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, formatPeriod(r), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.4f", r.ActionTime), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", len(r.Trajectory)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.1f%%", 100*r.Summary["comfort"]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, status, "1", 1, "L", false, 0, "")
	}

	for _, r := range results {
		if len(r.Events) == 0 {
			continue
		}
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Switching: %s", label.label(r.Method)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(30, 6, "Time", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 6, "Temperature", "1", 0, "R", true, 0, "")
		pdf.CellFormat(20, 6, "Switch", "1", 0, "C", true, 0, "")
		pdf.CellFormat(0, 6, "Source", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 8)
		for _, ev := range r.Events {
			source := "rate"
			if ev.StateOnly {
				source = "state partial"
			}
			pdf.CellFormat(30, 6, fmt.Sprintf("%.4f", ev.Time), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.4f", ev.Temp), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 6, ev.Transition.String(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(0, 6, source, "1", 1, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
