package physics

import (
	"math"
	"testing"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/integrators"
)

const (
	earthMass = 5.972e24
	sunMass   = 1.98911e30
	moonMass  = 7.34767309e22
	earthDist = 1.521e11
)

func mustCelestial(t *testing.T, name string, mass float64, pos, vel body.Vec3) body.CelestialBody {
	t.Helper()
	c, err := body.NewCelestial(name, mass, pos, vel, 0)
	if err != nil {
		t.Fatalf("NewCelestial(%s): %v", name, err)
	}
	return c
}

func sunEarthMoon(t *testing.T) []body.CelestialBody {
	t.Helper()
	earthPos := body.Vec3{X: earthDist}
	earthVel := body.Vec3{Y: 29290}
	// sorted by name, as the world hands them to the engine
	return []body.CelestialBody{
		mustCelestial(t, "Earth", earthMass, earthPos, earthVel),
		mustCelestial(t, "Moon", moonMass,
			earthPos.Add(body.Vec3{X: 4.037634453e8, Z: 3.63901118372e7}),
			earthVel.Add(body.Vec3{Y: 970})),
		mustCelestial(t, "Sun", sunMass, body.Vec3{}, body.Vec3{}),
	}
}

func TestAccelerationAt_SingleSource(t *testing.T) {
	sources := []Source{{ID: 0, Mass: earthMass, Position: body.Vec3{X: earthDist}}}

	acc := AccelerationAt(body.Vec3{}, sources, NoExclusion)

	want := G * earthMass / (earthDist * earthDist)
	if math.Abs(acc.Norm()-want)/want > 1e-12 {
		t.Errorf("|a| = %g, want %g", acc.Norm(), want)
	}
	if !acc.Normalize().Unit.EqualWithin(body.Vec3{X: 1}, 1e-12) {
		t.Errorf("acceleration %v does not point at the source", acc)
	}
}

func TestAccelerationAt_PointsAtSource(t *testing.T) {
	sources := []Source{{ID: 0, Mass: earthMass, Position: body.Vec3{}}}

	acc := AccelerationAt(body.Vec3{Y: earthDist}, sources, NoExclusion)

	if acc.X != 0 || acc.Z != 0 || acc.Y >= 0 {
		t.Errorf("expected acceleration along -Y, got %v", acc)
	}
}

func TestAccelerationAt_ExcludesByID(t *testing.T) {
	// two sources with identical mass and position: only the slot is
	// excluded, never every source that looks the same
	sources := []Source{
		{ID: 0, Mass: earthMass, Position: body.Vec3{X: earthDist}},
		{ID: 1, Mass: earthMass, Position: body.Vec3{X: earthDist}},
	}

	both := AccelerationAt(body.Vec3{}, sources, NoExclusion)
	one := AccelerationAt(body.Vec3{}, sources, 1)

	if math.Abs(both.Norm()-2*one.Norm()) > 1e-20 {
		t.Errorf("excluding one slot: |a| = %g, want half of %g", one.Norm(), both.Norm())
	}
}

func TestAccelerationAt_SkipsCoincident(t *testing.T) {
	tests := []struct {
		name   string
		offset body.Vec3
		zero   bool
	}{
		{"same point", body.Vec3{}, true},
		{"inside threshold", body.Vec3{X: 0.5, Y: 0.5}, true},
		{"on threshold", body.Vec3{X: 1}, true},
		{"outside threshold", body.Vec3{X: 1.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := []Source{{ID: 0, Mass: sunMass, Position: tt.offset}}
			acc := AccelerationAt(body.Vec3{}, sources, NoExclusion)
			if !acc.IsFinite() {
				t.Fatalf("non-finite acceleration %v", acc)
			}
			if (acc == body.Vec3{}) != tt.zero {
				t.Errorf("acceleration = %v, zero expected: %v", acc, tt.zero)
			}
		})
	}
}

func TestSoftened_ApproachesNewtonianFarAway(t *testing.T) {
	sources := []Source{{ID: 0, Mass: sunMass, Position: body.Vec3{X: earthDist}}}
	f := Softened{Epsilon: 1e3}

	soft := f.AccelerationAt(body.Vec3{}, sources, NoExclusion)
	hard := Newtonian{}.AccelerationAt(body.Vec3{}, sources, NoExclusion)

	if math.Abs(soft.Norm()-hard.Norm())/hard.Norm() > 1e-9 {
		t.Errorf("softened %g vs newtonian %g", soft.Norm(), hard.Norm())
	}

	near := []Source{{ID: 0, Mass: sunMass, Position: body.Vec3{X: 10}}}
	if f.AccelerationAt(body.Vec3{}, near, NoExclusion).Norm() >= AccelerationAt(body.Vec3{}, near, NoExclusion).Norm() {
		t.Error("softening should weaken close-range acceleration")
	}
}

func TestNewField(t *testing.T) {
	if _, err := NewField("softened", 0); err == nil {
		t.Error("expected error for zero softening")
	}
	if _, err := NewField("barnes-hut", 0); err == nil {
		t.Error("expected error for unknown field")
	}
	f, err := NewField("", 0)
	if err != nil || f.Name() != "newtonian" {
		t.Errorf("default field = %v, %v", f, err)
	}
}

func TestEngine_FrozenView(t *testing.T) {
	a := mustCelestial(t, "A", 1e20, body.Vec3{X: -1e6}, body.Vec3{})
	b := mustCelestial(t, "B", 1e20, body.Vec3{X: 1e6}, body.Vec3{})

	engine := NewEngine(Newtonian{}, integrators.NewSymplecticEuler())
	next, _ := engine.Step([]body.CelestialBody{a, b}, nil, 10)

	// symmetric pair must stay symmetric regardless of update order
	pa, pb := next[0].Position(), next[1].Position()
	if pa.X != -pb.X {
		t.Errorf("asymmetric update: %v vs %v", pa, pb)
	}
	if a.Position() != (body.Vec3{X: -1e6}) {
		t.Error("Step modified its input")
	}
}

func TestEngine_SpacecraftAreNotSources(t *testing.T) {
	sun := mustCelestial(t, "Sun", sunMass, body.Vec3{}, body.Vec3{})
	craft, err := body.NewSpacecraft("Probe", 1e30, body.Vec3{X: 1e9}, body.Vec3{})
	if err != nil {
		t.Fatal(err)
	}
	other, _ := body.NewSpacecraft("Probe2", 1e30, body.Vec3{X: 1e9, Y: 100}, body.Vec3{})

	engine := NewEngine(nil, nil)
	cel, crafts := engine.Step([]body.CelestialBody{sun}, []body.Spacecraft{craft, other}, 60)

	if cel[0].Velocity() != (body.Vec3{}) {
		t.Errorf("sun accelerated by spacecraft: %v", cel[0].Velocity())
	}
	if crafts[0].Velocity().X >= 0 || crafts[1].Velocity().X >= 0 {
		t.Errorf("spacecraft not pulled toward sun: %v %v", crafts[0].Velocity(), crafts[1].Velocity())
	}
	if crafts[0].Velocity().Y != 0 {
		t.Errorf("spacecraft attracted each other: %v", crafts[0].Velocity())
	}
}

func TestEngine_MomentumConserved(t *testing.T) {
	bodies := sunEarthMoon(t)
	engine := NewEngine(Newtonian{}, integrators.NewSymplecticEuler())

	p0 := Momentum(bodies)
	scale := 0.0
	for _, c := range bodies {
		scale += c.Mass() * c.Velocity().Norm()
	}

	for i := 0; i < 5000; i++ {
		bodies, _ = engine.Step(bodies, nil, 3600)
	}

	drift := Momentum(bodies).Sub(p0).Norm() / scale
	if drift > 1e-9 {
		t.Errorf("relative momentum drift %g after 5000 ticks", drift)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	run := func() []body.CelestialBody {
		bodies := sunEarthMoon(t)
		engine := NewEngine(nil, nil)
		for i := 0; i < 1000; i++ {
			bodies, _ = engine.Step(bodies, nil, 3600)
		}
		return bodies
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Position() != b[i].Position() || a[i].Velocity() != b[i].Velocity() {
			t.Errorf("%s diverged between identical runs", a[i].Name())
		}
	}
}

func TestEnergy_BoundOrbitNegative(t *testing.T) {
	if e := Energy(sunEarthMoon(t)); e >= 0 {
		t.Errorf("expected bound system energy < 0, got %g", e)
	}
}

func TestAngularMomentum(t *testing.T) {
	c := mustCelestial(t, "A", 2, body.Vec3{X: 1}, body.Vec3{Y: 3})
	if got := AngularMomentum([]body.CelestialBody{c}); got != (body.Vec3{Z: 6}) {
		t.Errorf("L = %v, want {0 0 6}", got)
	}
}
