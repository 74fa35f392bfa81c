package world

import (
	"slices"
	"sort"

	"github.com/san-kum/orbsim/internal/body"
)

// Snapshot is the state of a World at the end of a tick. Its contents
// cannot be modified through its methods, so a Snapshot may be shared
// freely between goroutines.
type Snapshot struct {
	celestials     []body.CelestialBody
	spacecraft     []body.Spacecraft
	tick           uint64
	simTime        float64
	timeScale      float64
	ticksPerSecond int
}

// Tick is the number of completed ticks.
func (s Snapshot) Tick() uint64 { return s.tick }

// SimTime is the simulated time elapsed, in seconds.
func (s Snapshot) SimTime() float64 { return s.simTime }

func (s Snapshot) TimeScale() float64  { return s.timeScale }
func (s Snapshot) TicksPerSecond() int { return s.ticksPerSecond }

// Celestials returns the celestial bodies sorted by name.
func (s Snapshot) Celestials() []body.CelestialBody { return slices.Clone(s.celestials) }

// Spacecraft returns the spacecraft sorted by name.
func (s Snapshot) Spacecraft() []body.Spacecraft { return slices.Clone(s.spacecraft) }

func (s Snapshot) Celestial(name string) (body.CelestialBody, bool) {
	i := sort.Search(len(s.celestials), func(i int) bool { return s.celestials[i].Name() >= name })
	if i < len(s.celestials) && s.celestials[i].Name() == name {
		return s.celestials[i], true
	}
	return body.CelestialBody{}, false
}

func (s Snapshot) Craft(name string) (body.Spacecraft, bool) {
	i := sort.Search(len(s.spacecraft), func(i int) bool { return s.spacecraft[i].Name() >= name })
	if i < len(s.spacecraft) && s.spacecraft[i].Name() == name {
		return s.spacecraft[i], true
	}
	return body.Spacecraft{}, false
}

// Body looks a name up among spacecraft first, then celestial bodies.
func (s Snapshot) Body(name string) (body.Body, bool) {
	if c, ok := s.Craft(name); ok {
		return c, true
	}
	if c, ok := s.Celestial(name); ok {
		return c, true
	}
	return nil, false
}

// Bodies returns every body sorted by name. A spacecraft and a celestial
// body may share a name; the celestial body is listed first.
func (s Snapshot) Bodies() []body.Body {
	out := make([]body.Body, 0, len(s.celestials)+len(s.spacecraft))
	for _, c := range s.celestials {
		out = append(out, c)
	}
	for _, c := range s.spacecraft {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (s Snapshot) Len() int { return len(s.celestials) + len(s.spacecraft) }
