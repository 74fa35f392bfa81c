package tui

import (
	"math"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/world"
)

type massive interface {
	body.Body
	Mass() float64
}

// primary returns the celestial body, other than name, that pulls hardest
// on the named body. Ties go to the first by name.
func primary(snap world.Snapshot, name string) (body.CelestialBody, bool) {
	b, ok := snap.Body(name)
	if !ok {
		return body.CelestialBody{}, false
	}
	var (
		best  body.CelestialBody
		found bool
		pull  float64
	)
	for _, c := range snap.Celestials() {
		if c.Name() == name {
			continue
		}
		d2 := c.Position().Sub(b.Position()).NormSq()
		if d2 <= physics.MinDistanceSq {
			continue
		}
		if p := c.Mass() / d2; !found || p > pull {
			best, pull, found = c, p, true
		}
	}
	return best, found
}

// altitude is the distance of the named body from the surface of its
// primary.
func altitude(snap world.Snapshot, name string) (metres float64, over string, ok bool) {
	b, found := snap.Body(name)
	if !found {
		return 0, "", false
	}
	ref, found := primary(snap, name)
	if !found {
		return 0, "", false
	}
	return b.Position().Sub(ref.Position()).Norm() - ref.Radius(), ref.Name(), true
}

// hillRadius is the radius around the named body inside which its own
// gravity dominates the tide of its primary. It is zero when the body has
// no primary.
func hillRadius(snap world.Snapshot, name string) float64 {
	b, ok := snap.Body(name)
	if !ok {
		return 0
	}
	ref, ok := primary(snap, name)
	if !ok {
		return 0
	}
	m, ok := b.(massive)
	if !ok {
		return 0
	}
	d := b.Position().Sub(ref.Position()).Norm()
	return d * math.Cbrt(m.Mass()/(3*ref.Mass()))
}

// neighbourhood returns the positions of the named body and of every other
// body inside its Hill sphere. With nobody inside it falls back to the
// nearest other body.
func neighbourhood(snap world.Snapshot, name string) []body.Vec3 {
	centre, ok := snap.Body(name)
	if !ok {
		return nil
	}
	r := hillRadius(snap, name)
	points := []body.Vec3{centre.Position()}

	var nearest body.Vec3
	closest := math.Inf(1)
	for _, b := range snap.Bodies() {
		if b.Name() == name {
			continue
		}
		d := b.Position().Sub(centre.Position()).Norm()
		if d < r {
			points = append(points, b.Position())
		}
		if d < closest {
			nearest, closest = b.Position(), d
		}
	}
	if len(points) == 1 && !math.IsInf(closest, 1) {
		points = append(points, nearest)
	}
	return points
}
