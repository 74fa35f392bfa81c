package physics

import "github.com/san-kum/orbsim/internal/body"

// Energy returns the total kinetic plus gravitational potential energy of
// a closed system of celestial bodies. Pairs closer than MinDistanceSq are
// left out of the potential, matching the force rule.
func Energy(celestials []body.CelestialBody) float64 {
	ke, pe := 0.0, 0.0
	for i, a := range celestials {
		ke += 0.5 * a.Mass() * a.Velocity().NormSq()

		for j := i + 1; j < len(celestials); j++ {
			b := celestials[j]
			n := b.Position().Sub(a.Position()).Normalize()
			if n.DistanceSq <= MinDistanceSq {
				continue
			}
			pe -= G * a.Mass() * b.Mass() / n.Distance
		}
	}
	return ke + pe
}

// Momentum returns Σ mᵢ·vᵢ over the celestial bodies.
func Momentum(celestials []body.CelestialBody) body.Vec3 {
	var p body.Vec3
	for _, c := range celestials {
		p = p.Add(c.Velocity().Scale(c.Mass()))
	}
	return p
}

// AngularMomentum returns Σ mᵢ·(rᵢ × vᵢ).
func AngularMomentum(celestials []body.CelestialBody) body.Vec3 {
	var l body.Vec3
	for _, c := range celestials {
		r, v := c.Position(), c.Velocity()
		l = l.Add(body.Vec3{
			X: r.Y*v.Z - r.Z*v.Y,
			Y: r.Z*v.X - r.X*v.Z,
			Z: r.X*v.Y - r.Y*v.X,
		}.Scale(c.Mass()))
	}
	return l
}
