package systems

// timerSlack absorbs float rounding when frame deltas sum to the interval.
const timerSlack = 1e-9

// SpawnTimer fires once every Interval seconds of accumulated time.
type SpawnTimer struct {
	Interval float64
	Elapsed  float64
}

// Advance accumulates dt and reports whether the interval has elapsed.
// The timer restarts from zero when it fires; surplus time is discarded.
func (t *SpawnTimer) Advance(dt float64) bool {
	t.Elapsed += dt
	if t.Elapsed >= t.Interval-timerSlack {
		t.Elapsed = 0
		return true
	}
	return false
}

// Reset zeroes the accumulated time.
func (t *SpawnTimer) Reset() {
	t.Elapsed = 0
}
