package sim

import (
	"log/slog"
	"time"

	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/watch"
	"github.com/san-kum/orbsim/internal/world"
)

// State is the driver lifecycle stage.
type State int32

const (
	Idle State = iota
	Running
	ShuttingDown
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const DefaultFPS = 60

// MaxFPS is the highest tick rate whose period is still at least 1ns.
const MaxFPS = int(time.Second)

type Options struct {
	// FPS is the tick rate of Spin. dt per tick is timeScale/FPS.
	FPS int

	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger

	// Metrics may be nil.
	Metrics *metrics.Collector

	// Events extends or overrides the default event registry.
	Events map[string]Event

	// Output, when set, receives the snapshots instead of a sender created
	// by the driver. The driver publishes the initial snapshot to it.
	Output *watch.Sender[world.Snapshot]

	// Now is the wall clock used by the tick meter in Run. Defaults to
	// time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{FPS: DefaultFPS}
}
