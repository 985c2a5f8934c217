// Package analysis extracts cycle characteristics from temperature
// trajectories, independently of the switching statistics kept by the model.
//
//   - [DominantPeriod]: period of the strongest spectral component
//   - [CrossingPeriod]: mean spacing of upward level crossings
//   - [GeneratePhasePortrait]: temperature against its rate of change
//   - [CycleDiagram]: settled turning points across a parameter sweep
//
// # Cross-checking the period
//
// The model's own period comes from its first two switch-offs. For a settled
// cycle the spectral estimate should agree to within a frequency bin:
//
//	p, ok := analysis.DominantPeriod(traj)
package analysis
