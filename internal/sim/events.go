package sim

import (
	"maps"

	"github.com/san-kum/orbsim/internal/body"
)

// Event transforms the velocity of the body it is triggered on.
type Event func(v body.Vec3) body.Vec3

func Speedup(v body.Vec3) body.Vec3  { return v.Scale(2) }
func Slowdown(v body.Vec3) body.Vec3 { return v.Scale(0.5) }
func Halt(body.Vec3) body.Vec3       { return body.Vec3{} }

// DefaultEvents returns a fresh copy of the built-in event registry.
func DefaultEvents() map[string]Event {
	return map[string]Event{
		"speedup":  Speedup,
		"slowdown": Slowdown,
		"halt":     Halt,
	}
}

func mergeEvents(extra map[string]Event) map[string]Event {
	events := DefaultEvents()
	maps.Copy(events, extra)
	return events
}
