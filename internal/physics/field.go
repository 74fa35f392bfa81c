package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	// G is the gravitational constant in N·m²/kg².
	G = 6.6743e-11

	// MinDistanceSq is the squared separation (m²) at or below which a
	// source contributes nothing; the bodies are treated as coincident.
	MinDistanceSq = 1.0

	// NoExclusion marks an acceleration query with no excluded source.
	NoExclusion = -1
)

// Source is one gravity-generating mass in a tick's frozen view. ID is the
// slot assigned by the engine and is the only identity used for exclusion.
type Source struct {
	ID       int
	Mass     float64
	Position body.Vec3
}

// Field computes the gravitational acceleration at a point.
type Field interface {
	Name() string
	AccelerationAt(point body.Vec3, sources []Source, exclude int) body.Vec3
}

// AccelerationAt sums Newtonian accelerations at point from every source
// whose ID differs from exclude, in the order given.
func AccelerationAt(point body.Vec3, sources []Source, exclude int) body.Vec3 {
	var acc body.Vec3
	for _, s := range sources {
		if s.ID == exclude {
			continue
		}
		n := s.Position.Sub(point).Normalize()
		if n.DistanceSq <= MinDistanceSq {
			continue
		}
		acc = acc.Add(n.Unit.Scale(G * s.Mass / n.DistanceSq))
	}
	return acc
}

type Newtonian struct{}

func (Newtonian) Name() string { return "newtonian" }

func (Newtonian) AccelerationAt(point body.Vec3, sources []Source, exclude int) body.Vec3 {
	return AccelerationAt(point, sources, exclude)
}

// Softened applies Plummer softening: a = G·m·r / (|r|² + ε²)^(3/2). It
// removes the close-encounter spike at the cost of weakening forces
// within a few ε of a source.
type Softened struct {
	Epsilon float64
}

func (Softened) Name() string { return "softened" }

func (f Softened) AccelerationAt(point body.Vec3, sources []Source, exclude int) body.Vec3 {
	eps2 := f.Epsilon * f.Epsilon
	var acc body.Vec3
	for _, s := range sources {
		if s.ID == exclude {
			continue
		}
		r := s.Position.Sub(point)
		r2 := r.NormSq()
		if r2 <= MinDistanceSq {
			continue
		}
		rInv := 1.0 / math.Sqrt(r2+eps2)
		acc = acc.Add(r.Scale(G * s.Mass * rInv * rInv * rInv))
	}
	return acc
}

// NewField returns the force source registered under name. softening is
// only used by "softened".
func NewField(name string, softening float64) (Field, error) {
	switch name {
	case "newtonian", "":
		return Newtonian{}, nil
	case "softened":
		if softening <= 0 {
			return nil, fmt.Errorf("softened field needs a positive softening length, got %g", softening)
		}
		return Softened{Epsilon: softening}, nil
	default:
		return nil, fmt.Errorf("unknown field: %s (available: %v)", name, FieldNames())
	}
}

func FieldNames() []string {
	names := []string{"newtonian", "softened"}
	sort.Strings(names)
	return names
}
