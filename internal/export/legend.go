package export

import (
	"fmt"

	"github.com/san-kum/thermosim/internal/experiment"
)

// Labeler turns a method name into its display label.
type Labeler func(method string) string

func (l Labeler) label(method string) string {
	if l == nil {
		return method
	}
	return l(method)
}

// Legend is the per-method legend entry: "<label>, Period = p, Action Time = a".
func Legend(label string, r experiment.Result) string {
	period := "n/a"
	if r.PeriodDetected {
		period = fmt.Sprintf("%.4g", r.Period)
	}
	s := fmt.Sprintf("%s, Period = %s, Action Time = %.4g", label, period, r.ActionTime)
	if r.Err != nil {
		s += " (incomplete)"
	}
	return s
}

func formatPeriod(r experiment.Result) string {
	if !r.PeriodDetected {
		return "not detected"
	}
	return fmt.Sprintf("%.4f", r.Period)
}

func errorText(r experiment.Result) string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
