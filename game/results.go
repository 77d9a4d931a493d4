package game

import "github.com/pthm-cable/reef/components"

// PoolCounts holds live entity counts.
type PoolCounts struct {
	Small   int
	Enemy   int
	Food    int
	Bubbles int
}

// TickResult is reported to observers after every tick.
type TickResult struct {
	Session     string
	Tick        int64
	DT          float64 // seconds simulated by this tick
	SimTime     float64
	Score       int
	ScoreGained int
	PlayerSize  float64
	PlayerX     float64
	PlayerY     float64
	GameOver    bool
	Counts      PoolCounts
}

// GameOverEvent is the terminal report of a session.
type GameOverEvent struct {
	Session    string
	FinalScore int
	FinalSize  float64
	Tick       int64
	SimTime    float64
	Killer     components.Kind
	KillerSize float64
	Rank       int // leaderboard placement, 0 if unranked
}
