// Package integrators provides time-stepping strategies for the gravity
// engine.
//
// An [Integrator] advances one body by dt given the acceleration computed
// from the tick's frozen gravity sources. Strategies are selected by name:
//
//   - "symplectic": [SymplecticEuler], the default
//   - "euler": [Euler], explicit forward Euler for comparison runs
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbsim/internal/body"
)

type Integrator interface {
	Name() string
	Integrate(pos, vel, acc body.Vec3, dt float64) (body.Vec3, body.Vec3)
}

const Default = "symplectic"

var registry = map[string]func() Integrator{
	"symplectic": func() Integrator { return NewSymplecticEuler() },
	"euler":      func() Integrator { return NewEuler() },
}

// Lookup returns a new integrator registered under name.
func Lookup(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
