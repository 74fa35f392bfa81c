package physics

import (
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/integrators"
)

// Engine advances celestial bodies and spacecraft by one tick using a
// force source and an integrator. An Engine reuses its source buffer and
// must not be shared between goroutines.
type Engine struct {
	field      Field
	integrator integrators.Integrator
	sources    []Source
}

func NewEngine(field Field, integrator integrators.Integrator) *Engine {
	if field == nil {
		field = Newtonian{}
	}
	if integrator == nil {
		integrator = integrators.NewSymplecticEuler()
	}
	return &Engine{field: field, integrator: integrator}
}

func (e *Engine) Field() Field                       { return e.field }
func (e *Engine) Integrator() integrators.Integrator { return e.integrator }

// Step returns the bodies advanced by dt. Positions are frozen once before
// any update so that every acceleration of the tick sees the same
// pre-update view; celestials[i] is source slot i. Summation follows the
// slice order, which callers keep sorted by name. The inputs are not
// modified.
func (e *Engine) Step(celestials []body.CelestialBody, spacecraft []body.Spacecraft, dt float64) ([]body.CelestialBody, []body.Spacecraft) {
	sources := e.freeze(celestials)

	craftAcc := make([]body.Vec3, len(spacecraft))
	for i, s := range spacecraft {
		craftAcc[i] = e.field.AccelerationAt(s.Position(), sources, NoExclusion)
	}
	celestialAcc := make([]body.Vec3, len(celestials))
	for i, c := range celestials {
		celestialAcc[i] = e.field.AccelerationAt(c.Position(), sources, i)
	}

	nextCraft := make([]body.Spacecraft, len(spacecraft))
	for i, s := range spacecraft {
		pos, vel := e.integrator.Integrate(s.Position(), s.Velocity(), craftAcc[i], dt)
		nextCraft[i] = s.WithMotion(pos, vel)
	}
	nextCelestials := make([]body.CelestialBody, len(celestials))
	for i, c := range celestials {
		pos, vel := e.integrator.Integrate(c.Position(), c.Velocity(), celestialAcc[i], dt)
		nextCelestials[i] = c.WithMotion(pos, vel)
	}

	return nextCelestials, nextCraft
}

// freeze copies the pre-update celestial positions into the engine's
// reused source buffer.
func (e *Engine) freeze(celestials []body.CelestialBody) []Source {
	if cap(e.sources) < len(celestials) {
		e.sources = make([]Source, len(celestials))
	}
	sources := e.sources[:len(celestials)]
	for i, c := range celestials {
		sources[i] = Source{ID: i, Mass: c.Mass(), Position: c.Position()}
	}
	return sources
}
