package sim

import "time"

// Meter counts ticks per wall-clock second. The count for a window is
// published when the first tick of the next window arrives.
type Meter struct {
	start time.Time
	count int
	last  int
}

// Tick records a tick at now. It returns the latest full-second count and
// whether that count was updated by this call.
func (m *Meter) Tick(now time.Time) (int, bool) {
	if m.start.IsZero() {
		m.start = now
	}
	if now.Sub(m.start) >= time.Second {
		m.last = m.count
		m.count = 1
		m.start = now
		return m.last, true
	}
	m.count++
	return m.last, false
}

func (m *Meter) Last() int { return m.last }
