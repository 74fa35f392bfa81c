package world

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/physics"
)

var (
	ErrDuplicateName    = errors.New("world: duplicate body name")
	ErrInvalidTimeScale = errors.New("world: time scale must be finite and not negative")
	ErrUnknownTarget    = errors.New("world: no body with that name")
)

// World is the mutable simulation state. It is owned by a single driver
// goroutine; other goroutines only ever see Snapshots.
type World struct {
	celestials     map[string]body.CelestialBody
	spacecraft     map[string]body.Spacecraft
	celestialNames []string
	craftNames     []string

	timeScale      float64
	ticksPerSecond int
	tick           uint64
	simTime        float64

	// scratch slices handed to the engine, reused every tick
	celestialBuf []body.CelestialBody
	craftBuf     []body.Spacecraft
}

// New builds a world from externally supplied bodies. Names must be unique
// within each kind.
func New(celestials []body.CelestialBody, spacecraft []body.Spacecraft, timeScale float64) (*World, error) {
	if err := ValidateTimeScale(timeScale); err != nil {
		return nil, err
	}

	w := &World{
		celestials: make(map[string]body.CelestialBody, len(celestials)),
		spacecraft: make(map[string]body.Spacecraft, len(spacecraft)),
		timeScale:  timeScale,
	}
	for _, c := range celestials {
		if c.Name() == "" {
			return nil, body.ErrEmptyName
		}
		if _, dup := w.celestials[c.Name()]; dup {
			return nil, fmt.Errorf("%w: celestial %q", ErrDuplicateName, c.Name())
		}
		w.celestials[c.Name()] = c
		w.celestialNames = append(w.celestialNames, c.Name())
	}
	for _, s := range spacecraft {
		if s.Name() == "" {
			return nil, body.ErrEmptyName
		}
		if _, dup := w.spacecraft[s.Name()]; dup {
			return nil, fmt.Errorf("%w: spacecraft %q", ErrDuplicateName, s.Name())
		}
		w.spacecraft[s.Name()] = s
		w.craftNames = append(w.craftNames, s.Name())
	}
	sort.Strings(w.celestialNames)
	sort.Strings(w.craftNames)

	return w, nil
}

func ValidateTimeScale(f float64) error {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidTimeScale, f)
	}
	return nil
}

func (w *World) TimeScale() float64 { return w.timeScale }
func (w *World) Tick() uint64       { return w.tick }
func (w *World) SimTime() float64   { return w.simTime }

func (w *World) SetTimeScale(f float64) error {
	if err := ValidateTimeScale(f); err != nil {
		return err
	}
	w.timeScale = f
	return nil
}

func (w *World) SetTicksPerSecond(n int) { w.ticksPerSecond = n }

// Advance integrates every body by dt with the engine, in name order.
func (w *World) Advance(engine *physics.Engine, dt float64) {
	w.celestialBuf = w.celestialBuf[:0]
	for _, name := range w.celestialNames {
		w.celestialBuf = append(w.celestialBuf, w.celestials[name])
	}
	w.craftBuf = w.craftBuf[:0]
	for _, name := range w.craftNames {
		w.craftBuf = append(w.craftBuf, w.spacecraft[name])
	}

	celestials, spacecraft := engine.Step(w.celestialBuf, w.craftBuf, dt)

	for _, c := range celestials {
		w.celestials[c.Name()] = c
	}
	for _, s := range spacecraft {
		w.spacecraft[s.Name()] = s
	}
	w.tick++
	w.simTime += dt
}

// UpdateVelocity applies fn to the velocity of the named body. Spacecraft
// are searched before celestial bodies.
func (w *World) UpdateVelocity(name string, fn func(body.Vec3) body.Vec3) (body.Body, error) {
	if s, ok := w.spacecraft[name]; ok {
		s = s.WithMotion(s.Position(), fn(s.Velocity()))
		w.spacecraft[name] = s
		return s, nil
	}
	if c, ok := w.celestials[name]; ok {
		c = c.WithMotion(c.Position(), fn(c.Velocity()))
		w.celestials[name] = c
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// Snapshot returns an immutable copy of the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		celestials:     make([]body.CelestialBody, len(w.celestialNames)),
		spacecraft:     make([]body.Spacecraft, len(w.craftNames)),
		tick:           w.tick,
		simTime:        w.simTime,
		timeScale:      w.timeScale,
		ticksPerSecond: w.ticksPerSecond,
	}
	for i, name := range w.celestialNames {
		s.celestials[i] = w.celestials[name]
	}
	for i, name := range w.craftNames {
		s.spacecraft[i] = w.spacecraft[name]
	}
	return s
}
