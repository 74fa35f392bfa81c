package tui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orbsim/internal/body"
)

const (
	zoomStep   = 1.25
	rotateStep = math.Pi / 24
)

// Camera looks down the Z axis at a focus body. Yaw turns the view about Z,
// Pitch tilts it about the screen's horizontal axis. Scale is metres per
// sub-pixel.
type Camera struct {
	Focus string
	Scale float64
	Yaw   float64
	Pitch float64
}

func NewCamera(focus string, scale float64) *Camera {
	if !(scale > 0) {
		scale = 1
	}
	return &Camera{Focus: focus, Scale: scale}
}

func (c *Camera) ZoomIn()          { c.Scale /= zoomStep }
func (c *Camera) ZoomOut()         { c.Scale *= zoomStep }
func (c *Camera) RotateLeft()      { c.Yaw -= rotateStep }
func (c *Camera) RotateRight()     { c.Yaw += rotateStep }
func (c *Camera) TiltUp()          { c.Pitch = math.Max(c.Pitch-rotateStep, -math.Pi/2) }
func (c *Camera) TiltDown()        { c.Pitch = math.Min(c.Pitch+rotateStep, math.Pi/2) }
func (c *Camera) ResetView()       { c.Yaw, c.Pitch = 0, 0 }
func (c *Camera) view() mgl64.Mat3 { return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DZ(c.Yaw)) }

// Project maps p, seen from origin, onto a canvas of w x h sub-pixels with
// origin at the centre and screen y pointing down. ok is false when the
// point falls outside the canvas.
func (c *Camera) Project(p, origin body.Vec3, w, h int) (x, y int, ok bool) {
	rel := p.Sub(origin)
	v := c.view().Mul3x1(mgl64.Vec3{rel.X, rel.Y, rel.Z})

	sx := float64(w)/2 + v.X()/c.Scale
	sy := float64(h)/2 - v.Y()/c.Scale
	if math.IsNaN(sx) || math.IsNaN(sy) || sx < 0 || sy < 0 || sx >= float64(w) || sy >= float64(h) {
		return 0, 0, false
	}
	return int(sx), int(sy), true
}

// Fit picks a scale that keeps every point within the canvas with a small
// margin.
func (c *Camera) Fit(points []body.Vec3, origin body.Vec3, w, h int) {
	var far float64
	for _, p := range points {
		far = math.Max(far, p.Sub(origin).Norm())
	}
	half := float64(min(w, h)) / 2 * 0.9
	if far == 0 || half <= 0 {
		return
	}
	c.Scale = far / half
}
