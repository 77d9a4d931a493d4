package telemetry

import "github.com/pthm-cable/reef/components"

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in simulated seconds since frame dt varies.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	session          string
	windowStartTick  int64
	windowStartTime  float64
	windowStartScore int

	// Event counters for current window
	spawned        [components.NumKinds]int
	foodSpawned    int
	playerAteFish  [components.NumKinds]int
	playerAteFood  int
	fishLost       [components.NumKinds]int
	fishAteFood    int
	invalidRemoved int
	gameOvers      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Begin starts a new session, discarding any partial window.
func (c *Collector) Begin(session string) {
	*c = Collector{windowDurationSec: c.windowDurationSec, session: session}
}

// Record adds an event to the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventPlayerAteFish:
		c.playerAteFish[e.Kind] += e.Count
	case EventPlayerAteFood:
		c.playerAteFood += e.Count
	case EventFishAteFish:
		c.fishLost[e.Kind] += e.Count
	case EventFishAteFood:
		c.fishAteFood += e.Count
	case EventFishSpawn:
		c.spawned[e.Kind] += e.Count
	case EventFoodSpawn:
		c.foodSpawned += e.Count
	case EventInvalidRemoved:
		c.invalidRemoved += e.Count
	case EventGameOver:
		c.gameOvers += e.Count
	}
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Sample is the arena state captured at window end.
type Sample struct {
	Tick        int64
	SimTime     float64
	Score       int
	PlayerSize  float64
	FoodCount   int
	BubbleCount int
	Sizes       [components.NumKinds][]float64 // one entry per live fish
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(s Sample) WindowStats {
	small := ComputeSizeStats(s.Sizes[components.KindSmall])
	enemy := ComputeSizeStats(s.Sizes[components.KindEnemy])

	stats := WindowStats{
		Session:         c.session,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   s.Tick,
		SimTimeSec:      s.SimTime,

		Score:       s.Score,
		ScoreGained: s.Score - c.windowStartScore,
		PlayerSize:  s.PlayerSize,

		SmallCount:  len(s.Sizes[components.KindSmall]),
		EnemyCount:  len(s.Sizes[components.KindEnemy]),
		FoodCount:   s.FoodCount,
		BubbleCount: s.BubbleCount,

		SmallSpawned:   c.spawned[components.KindSmall],
		EnemySpawned:   c.spawned[components.KindEnemy],
		FoodSpawned:    c.foodSpawned,
		PlayerAteSmall: c.playerAteFish[components.KindSmall],
		PlayerAteEnemy: c.playerAteFish[components.KindEnemy],
		PlayerAteFood:  c.playerAteFood,
		SmallLost:      c.fishLost[components.KindSmall],
		EnemyLost:      c.fishLost[components.KindEnemy],
		FishAteFood:    c.fishAteFood,
		InvalidRemoved: c.invalidRemoved,
		GameOvers:      c.gameOvers,

		SmallSizeMean: small.Mean,
		SmallSizeStd:  small.Std,
		SmallSizeP50:  small.P50,
		SmallSizeP90:  small.P90,

		EnemySizeMean: enemy.Mean,
		EnemySizeStd:  enemy.Std,
		EnemySizeP50:  enemy.P50,
		EnemySizeP90:  enemy.P90,

		MaxFishSize: max(small.Max, enemy.Max),
	}

	// Reset for next window
	session, window := c.session, c.windowDurationSec
	*c = Collector{
		windowDurationSec: window,
		session:           session,
		windowStartTick:   s.Tick,
		windowStartTime:   s.SimTime,
		windowStartScore:  s.Score,
	}

	return stats
}

// WindowDurationSec returns the simulated seconds per window.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
