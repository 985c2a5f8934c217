package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colours terminal output by role in the room model: the relay states,
// the hysteresis band and one series colour per method.
type Theme struct {
	Name string

	Title lipgloss.Color
	Text  lipgloss.Color
	Muted lipgloss.Color

	Acting lipgloss.Color // coil driving the room
	Idle   lipgloss.Color // room drifting towards the outside air
	Band   lipgloss.Color

	OK     lipgloss.Color
	Failed lipgloss.Color

	// Series is cycled over methods in registry order; BandLine draws the
	// thresholds on terminal charts.
	Series   []asciigraph.AnsiColor
	BandLine asciigraph.AnsiColor
}

var (
	ThemeThermal = Theme{
		Name:     "thermal",
		Title:    lipgloss.Color("#ff9e64"),
		Text:     lipgloss.Color("#f5f5f5"),
		Muted:    lipgloss.Color("#7a7a8c"),
		Acting:   lipgloss.Color("#ff6a3d"),
		Idle:     lipgloss.Color("#4aa3df"),
		Band:     lipgloss.Color("#f2c94c"),
		OK:       lipgloss.Color("#6fcf97"),
		Failed:   lipgloss.Color("#eb5757"),
		Series:   []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Orange, asciigraph.Green, asciigraph.Cyan, asciigraph.Blue, asciigraph.Magenta, asciigraph.White},
		BandLine: asciigraph.Yellow,
	}

	// ThemeChiller suits cool mode, where acting means cold air.
	ThemeChiller = Theme{
		Name:     "chiller",
		Title:    lipgloss.Color("#7fdbff"),
		Text:     lipgloss.Color("#e6f7ff"),
		Muted:    lipgloss.Color("#5b7083"),
		Acting:   lipgloss.Color("#39cccc"),
		Idle:     lipgloss.Color("#ffb347"),
		Band:     lipgloss.Color("#b0c4de"),
		OK:       lipgloss.Color("#2ecc40"),
		Failed:   lipgloss.Color("#ff4136"),
		Series:   []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Blue, asciigraph.Green, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Orange, asciigraph.White},
		BandLine: asciigraph.LightGray,
	}

	ThemeMono = Theme{
		Name:     "mono",
		Title:    lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#dddddd"),
		Muted:    lipgloss.Color("#777777"),
		Acting:   lipgloss.Color("#ffffff"),
		Idle:     lipgloss.Color("#999999"),
		Band:     lipgloss.Color("#bbbbbb"),
		OK:       lipgloss.Color("#dddddd"),
		Failed:   lipgloss.Color("#ffffff"),
		Series:   []asciigraph.AnsiColor{asciigraph.Default},
		BandLine: asciigraph.Gray,
	}

	// ThemeHighContrast keeps acting and idle apart for colour-blind readers.
	ThemeHighContrast = Theme{
		Name:     "high-contrast",
		Title:    lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#aaaaaa"),
		Acting:   lipgloss.Color("#ff8c00"),
		Idle:     lipgloss.Color("#1e90ff"),
		Band:     lipgloss.Color("#ffffff"),
		OK:       lipgloss.Color("#00ff00"),
		Failed:   lipgloss.Color("#ff00ff"),
		Series:   []asciigraph.AnsiColor{asciigraph.Orange, asciigraph.Blue, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan, asciigraph.Green, asciigraph.Red},
		BandLine: asciigraph.White,
	}

	CurrentTheme = ThemeThermal

	Themes = []Theme{
		ThemeThermal,
		ThemeChiller,
		ThemeMono,
		ThemeHighContrast,
	}
)

func init() {
	ApplyTheme(CurrentTheme)
}

// GetTheme returns the named theme, or thermal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeThermal
}

func SetTheme(name string) {
	ApplyTheme(GetTheme(name))
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// SeriesColor is the chart colour of the i-th method.
func (t Theme) SeriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
