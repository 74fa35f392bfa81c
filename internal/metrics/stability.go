package metrics

import (
	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/world"
)

// Stability is the fraction of observed snapshots in which every body is
// finite and within radius of the origin. Escapes and numeric blow-ups
// pull it below 1.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap world.Snapshot) {
	s.samples++
	r2 := s.radius * s.radius
	for _, b := range snap.Bodies() {
		if !stable(b, r2) {
			s.violations++
			break
		}
	}
}

func stable(b body.Body, r2 float64) bool {
	p := b.Position()
	return p.IsFinite() && b.Velocity().IsFinite() && p.NormSq() <= r2
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
