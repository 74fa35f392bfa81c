package integrators

import "github.com/san-kum/orbsim/internal/body"

// SymplecticEuler is the semi-implicit Euler method: velocity is advanced
// first and the position uses the updated velocity. The ordering keeps
// orbital energy bounded and must not be swapped.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (SymplecticEuler) Name() string { return "symplectic" }

func (SymplecticEuler) Integrate(pos, vel, acc body.Vec3, dt float64) (body.Vec3, body.Vec3) {
	vel = vel.Add(acc.Scale(dt))
	pos = pos.Add(vel.Scale(dt))
	return pos, vel
}

// Euler is the explicit forward Euler method. Orbits gain energy under it;
// it is kept for integrator comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Name() string { return "euler" }

func (Euler) Integrate(pos, vel, acc body.Vec3, dt float64) (body.Vec3, body.Vec3) {
	newPos := pos.Add(vel.Scale(dt))
	newVel := vel.Add(acc.Scale(dt))
	return newPos, newVel
}
