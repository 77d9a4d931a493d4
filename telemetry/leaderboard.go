package telemetry

import (
	"encoding/json"
	"sort"
)

// SessionResult is the outcome of one finished session.
type SessionResult struct {
	Session    string  `csv:"session" json:"session"`
	Score      int     `csv:"score" json:"score"`
	FinalSize  float64 `csv:"final_size" json:"final_size"`
	Ticks      int64   `csv:"ticks" json:"ticks"`
	SimTimeSec float64 `csv:"sim_time" json:"sim_time_sec"`
	Killer     string  `csv:"killer" json:"killer"`
	KillerSize float64 `csv:"killer_size" json:"killer_size"`
}

// Leaderboard keeps the best sessions seen by this process, highest score first.
// Equal scores keep arrival order.
type Leaderboard struct {
	entries []SessionResult
	maxSize int
}

// NewLeaderboard creates a leaderboard holding at most maxSize entries.
func NewLeaderboard(maxSize int) *Leaderboard {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Leaderboard{
		entries: make([]SessionResult, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a finished session. Returns its 1-based rank, or 0 if it
// did not place.
func (lb *Leaderboard) Consider(r SessionResult) int {
	// Find insertion point (sorted descending by score)
	idx := sort.Search(len(lb.entries), func(i int) bool {
		return lb.entries[i].Score < r.Score
	})

	// If the board is full and the entry would be last, skip it
	if len(lb.entries) >= lb.maxSize && idx >= lb.maxSize {
		return 0
	}

	lb.entries = append(lb.entries, SessionResult{})
	copy(lb.entries[idx+1:], lb.entries[idx:])
	lb.entries[idx] = r

	// Trim if over capacity
	if len(lb.entries) > lb.maxSize {
		lb.entries = lb.entries[:lb.maxSize]
	}

	return idx + 1
}

// Entries returns a copy of the ranked entries.
func (lb *Leaderboard) Entries() []SessionResult {
	out := make([]SessionResult, len(lb.entries))
	copy(out, lb.entries)
	return out
}

// Best returns the top entry, if any.
func (lb *Leaderboard) Best() (SessionResult, bool) {
	if len(lb.entries) == 0 {
		return SessionResult{}, false
	}
	return lb.entries[0], true
}

// Len returns the number of ranked entries.
func (lb *Leaderboard) Len() int {
	return len(lb.entries)
}

// MarshalJSON serializes the ranked entries.
func (lb *Leaderboard) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(lb.entries, "", "  ")
}
