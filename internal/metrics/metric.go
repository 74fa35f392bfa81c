// Package metrics observes published snapshots. Metric values summarize a
// run (energy drift, stability, separation); Collector exports the driver's
// operational counters to Prometheus.
package metrics

import "github.com/san-kum/orbsim/internal/world"

// Metric accumulates a single number over a sequence of snapshots.
type Metric interface {
	Name() string
	Observe(s world.Snapshot)
	Value() float64
	Reset()
}
