// Package viz renders simulation results in the terminal.
//
//   - [PlotTerminal]: all methods on one asciigraph chart
//   - [SummaryTable]: period, action time and comfort per method
//   - [NewViewer]: Bubble Tea viewer that toggles methods on and off
//
// # Key Bindings
//
//	1-9 - Toggle the n-th method
//	A   - Show all methods
//	T   - Cycle color themes
//	Q   - Quit
package viz
