// Package metrics counts what integration runs cost and summarises what they
// produce: prometheus counters for model evaluations and relay switches, and
// comfort metrics computed over a trajectory.
package metrics
