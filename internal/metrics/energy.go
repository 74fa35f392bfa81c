package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/world"
)

// EnergyDrift tracks the largest relative change of the celestial system's
// total energy from the first observed snapshot.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s world.Snapshot) {
	energy := physics.Energy(s.Celestials())

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64   { return e.maxDrift }
func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the largest change in total linear momentum,
// relative to the sum of the bodies' momentum magnitudes at the start.
// Using that sum as the scale keeps the value meaningful when the total
// momentum is zero.
type MomentumDrift struct {
	name     string
	initial  body.Vec3
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(s world.Snapshot) {
	celestials := s.Celestials()
	p := physics.Momentum(celestials)

	if m.samples == 0 {
		m.initial = p
		for _, c := range celestials {
			m.scale += c.Mass() * c.Velocity().Norm()
		}
	}
	m.samples++

	if m.scale > 0 {
		drift := p.Sub(m.initial).Norm() / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = body.Vec3{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
