// Package command defines the control messages accepted by the simulation
// driver and the bounded queue that carries them.
package command

import "fmt"

// Command is one of Shutdown, SetTimeScale or TriggerEvent.
type Command interface {
	// Kind is a short stable label used for logging and metrics.
	Kind() string
	command()
}

// Shutdown asks the driver to stop. The tick that drains it ends there
// without advancing the world, so the last snapshot observers see is the one
// published by the tick before. Commands queued behind it are not applied.
type Shutdown struct{}

// SetTimeScale replaces the ratio of simulated seconds to wall seconds.
type SetTimeScale struct {
	Factor float64
}

// TriggerEvent applies a named event to the body called Target.
type TriggerEvent struct {
	Target string
	Event  string
}

func (Shutdown) Kind() string     { return "shutdown" }
func (SetTimeScale) Kind() string { return "timescale" }
func (TriggerEvent) Kind() string { return "event" }

func (Shutdown) command()     {}
func (SetTimeScale) command() {}
func (TriggerEvent) command() {}

func (Shutdown) String() string       { return "shutdown" }
func (c SetTimeScale) String() string { return fmt.Sprintf("timescale %g", c.Factor) }
func (c TriggerEvent) String() string { return fmt.Sprintf("event %s %s", c.Target, c.Event) }
