package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/world"
)

// Separation records the distance between two named bodies at every
// observed snapshot. Value is the mean distance; Series keeps the samples
// for plotting. Snapshots missing either body are skipped.
type Separation struct {
	name     string
	from, to string
	series   []float64
	min, max float64
	sum      float64
}

func NewSeparation(from, to string) *Separation {
	return &Separation{
		name: fmt.Sprintf("separation_%s_%s", from, to),
		from: from,
		to:   to,
		min:  math.Inf(1),
		max:  math.Inf(-1),
	}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(snap world.Snapshot) {
	a, ok := snap.Body(s.from)
	if !ok {
		return
	}
	b, ok := snap.Body(s.to)
	if !ok {
		return
	}
	d := a.Position().Sub(b.Position()).Norm()
	s.series = append(s.series, d)
	s.sum += d
	s.min = math.Min(s.min, d)
	s.max = math.Max(s.max, d)
}

func (s *Separation) Value() float64 {
	if len(s.series) == 0 {
		return 0
	}
	return s.sum / float64(len(s.series))
}

// Series returns a copy of the recorded distances.
func (s *Separation) Series() []float64 {
	out := make([]float64, len(s.series))
	copy(out, s.series)
	return out
}

// Downsample returns at most n evenly spaced samples, for plots narrower
// than the run.
func (s *Separation) Downsample(n int) []float64 {
	if n <= 0 || len(s.series) <= n {
		return s.Series()
	}
	if n == 1 {
		return []float64{s.series[len(s.series)-1]}
	}
	out := make([]float64, n)
	step := float64(len(s.series)-1) / float64(n-1)
	for i := range out {
		out[i] = s.series[int(math.Round(float64(i)*step))]
	}
	return out
}

func (s *Separation) Min() float64 { return s.min }
func (s *Separation) Max() float64 { return s.max }

func (s *Separation) Reset() {
	s.series = s.series[:0]
	s.sum = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
}
