package body

import "math"

// Vec3 is a 3D vector in SI units. All operations return new values.
type Vec3 struct {
	X, Y, Z float64
}

// Norm is the result of normalizing a vector: its squared length, length
// and unit direction.
type Norm struct {
	DistanceSq float64
	Distance   float64
	Unit       Vec3
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) NormSq() float64 { return v.Dot(v) }

func (v Vec3) Norm() float64 { return math.Sqrt(v.NormSq()) }

// Normalize returns the magnitude of v together with its unit direction.
// The zero vector yields a zero unit vector.
func (v Vec3) Normalize() Norm {
	d2 := v.NormSq()
	d := math.Sqrt(d2)
	if d == 0 {
		return Norm{}
	}
	return Norm{
		DistanceSq: d2,
		Distance:   d,
		Unit:       Vec3{v.X / d, v.Y / d, v.Z / d},
	}
}

// EqualWithin reports whether every component differs by at most eps.
func (v Vec3) EqualWithin(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
