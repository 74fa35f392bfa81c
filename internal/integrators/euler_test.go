package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/orbsim/internal/body"
)

func TestSymplecticEuler_Ordering(t *testing.T) {
	integ := NewSymplecticEuler()

	pos, vel := integ.Integrate(body.Vec3{}, body.Vec3{X: 1}, body.Vec3{X: 2}, 0.5)

	// v' = 1 + 2*0.5 = 2, x' = 0 + 2*0.5 = 1 (uses the updated velocity)
	if vel != (body.Vec3{X: 2}) {
		t.Errorf("velocity = %v, want {2 0 0}", vel)
	}
	if pos != (body.Vec3{X: 1}) {
		t.Errorf("position = %v, want {1 0 0}", pos)
	}
}

func TestEuler_Ordering(t *testing.T) {
	integ := NewEuler()

	pos, vel := integ.Integrate(body.Vec3{}, body.Vec3{X: 1}, body.Vec3{X: 2}, 0.5)

	if vel != (body.Vec3{X: 2}) {
		t.Errorf("velocity = %v, want {2 0 0}", vel)
	}
	if pos != (body.Vec3{X: 0.5}) {
		t.Errorf("position = %v, want {0.5 0 0}", pos)
	}
}

func TestZeroDtFreezes(t *testing.T) {
	for _, name := range Names() {
		integ, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		p0, v0 := body.Vec3{X: 1, Y: 2, Z: 3}, body.Vec3{X: 4, Y: 5, Z: 6}
		p, v := integ.Integrate(p0, v0, body.Vec3{X: 100}, 0)
		if p != p0 || v != v0 {
			t.Errorf("%s: dt=0 changed state to %v %v", name, p, v)
		}
	}
}

func TestEnergyBehavior(t *testing.T) {
	energy := func(p, v body.Vec3) float64 { return 0.5*v.NormSq() + 0.5*p.NormSq() }

	run := func(integ Integrator) float64 {
		pos, vel := body.Vec3{X: 1}, body.Vec3{}
		for i := 0; i < 10000; i++ {
			pos, vel = integ.Integrate(pos, vel, harmonic(pos), 0.01)
		}
		return math.Abs(energy(pos, vel)-0.5) / 0.5
	}

	symplectic := run(NewSymplecticEuler())
	explicit := run(NewEuler())

	if symplectic > 0.02 {
		t.Errorf("symplectic energy drift too large: %.4f", symplectic)
	}
	if explicit <= symplectic {
		t.Errorf("expected explicit Euler to drift more: euler=%.4f symplectic=%.4f", explicit, symplectic)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("rk9"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	integ, err := Lookup(Default)
	if err != nil {
		t.Fatal(err)
	}
	if integ.Name() != Default {
		t.Errorf("Name() = %s, want %s", integ.Name(), Default)
	}
}
