package tui

import "github.com/san-kum/orbsim/internal/command"

// timeScaleKeys select a multiple of the configured time scale.
var timeScaleKeys = map[string]float64{
	"1": 1,
	"2": 200,
	"3": 500,
}

// eventKeys trigger an event on the focused body.
var eventKeys = map[string]string{
	"up":   "speedup",
	"down": "slowdown",
	"x":    "halt",
}

// KeyCommand maps a key to the simulation command it sends, if any.
func KeyCommand(key string, base float64, focus string) (command.Command, bool) {
	switch key {
	case "q", "ctrl+c":
		return command.Shutdown{}, true
	case " ", "space":
		return command.SetTimeScale{Factor: 0}, true
	}
	if mult, ok := timeScaleKeys[key]; ok {
		return command.SetTimeScale{Factor: base * mult}, true
	}
	if ev, ok := eventKeys[key]; ok && focus != "" {
		return command.TriggerEvent{Target: focus, Event: ev}, true
	}
	return nil, false
}
