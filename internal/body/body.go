package body

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyName       = errors.New("body: empty name")
	ErrNonPositiveMass = errors.New("body: mass must be positive")
	ErrNegativeRadius  = errors.New("body: radius must not be negative")
	ErrNonFinite       = errors.New("body: position or velocity is not finite")
)

// Body is either a CelestialBody or a Spacecraft.
type Body interface {
	Name() string
	Position() Vec3
	Velocity() Vec3
	sealed()
}

// CelestialBody generates gravity and is affected by it.
type CelestialBody struct {
	name   string
	mass   float64
	pos    Vec3
	vel    Vec3
	radius float64
}

func NewCelestial(name string, mass float64, pos, vel Vec3, radius float64) (CelestialBody, error) {
	if err := validate(name, mass, pos, vel); err != nil {
		return CelestialBody{}, err
	}
	if radius < 0 || math.IsNaN(radius) {
		return CelestialBody{}, fmt.Errorf("%w: %s has radius %g", ErrNegativeRadius, name, radius)
	}
	return CelestialBody{name: name, mass: mass, pos: pos, vel: vel, radius: radius}, nil
}

func (c CelestialBody) Name() string    { return c.name }
func (c CelestialBody) Mass() float64   { return c.mass }
func (c CelestialBody) Position() Vec3  { return c.pos }
func (c CelestialBody) Velocity() Vec3  { return c.vel }
func (c CelestialBody) Radius() float64 { return c.radius }
func (CelestialBody) sealed()           {}

// WithMotion returns a copy of c with the given position and velocity.
func (c CelestialBody) WithMotion(pos, vel Vec3) CelestialBody {
	c.pos, c.vel = pos, vel
	return c
}

// Spacecraft is a test particle: affected by celestial gravity, never a
// source of it. Mass is informational only.
type Spacecraft struct {
	name string
	mass float64
	pos  Vec3
	vel  Vec3
}

func NewSpacecraft(name string, mass float64, pos, vel Vec3) (Spacecraft, error) {
	if err := validate(name, mass, pos, vel); err != nil {
		return Spacecraft{}, err
	}
	return Spacecraft{name: name, mass: mass, pos: pos, vel: vel}, nil
}

func (s Spacecraft) Name() string   { return s.name }
func (s Spacecraft) Mass() float64  { return s.mass }
func (s Spacecraft) Position() Vec3 { return s.pos }
func (s Spacecraft) Velocity() Vec3 { return s.vel }
func (Spacecraft) sealed()          {}

func (s Spacecraft) WithMotion(pos, vel Vec3) Spacecraft {
	s.pos, s.vel = pos, vel
	return s
}

func validate(name string, mass float64, pos, vel Vec3) error {
	if name == "" {
		return ErrEmptyName
	}
	// !(mass > 0) also rejects NaN.
	if !(mass > 0) || math.IsInf(mass, 0) {
		return fmt.Errorf("%w: %s has mass %g", ErrNonPositiveMass, name, mass)
	}
	if !pos.IsFinite() || !vel.IsFinite() {
		return fmt.Errorf("%w: %s", ErrNonFinite, name)
	}
	return nil
}
