package game

import (
	"log/slog"

	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// record forwards an event to the window collector and metrics.
func (g *Game) record(e telemetry.Event) {
	g.collector.Record(e)
	g.metrics.Record(e)
}

// flushTelemetry publishes gauges and, when the window is due, flushes stats
// and checks bookmarks. The final partial window is flushed at game over.
func (g *Game) flushTelemetry() {
	g.metrics.ObserveTick(telemetry.TickState{
		Score:      g.score,
		PlayerSize: g.player.Body.Size,
		Fish:       g.numFish,
		Food:       g.numFood,
		Bubbles:    g.numBubbles,
	})

	if !g.over && !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.sample())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.Session, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample collects the arena state for a stats window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		Tick:        g.tick,
		SimTime:     g.simTime,
		Score:       g.score,
		PlayerSize:  g.player.Body.Size,
		FoodCount:   g.numFood,
		BubbleCount: g.numBubbles,
	}
	query := g.fishFilter.Query()
	for query.Next() {
		_, _, body, _, fish := query.Get()
		s.Sizes[fish.Kind] = append(s.Sizes[fish.Kind], body.Size)
	}
	return s
}

// endSession marks the game over and ranks the finished session.
func (g *Game) endSession(out systems.Outcome) {
	g.over = true
	g.killer = out.Killer
	g.killerSize = out.KillerSize

	result := telemetry.SessionResult{
		Session:    g.Session(),
		Score:      g.score,
		FinalSize:  g.player.Body.Size,
		Ticks:      g.tick,
		SimTimeSec: g.simTime,
		Killer:     out.Killer.String(),
		KillerSize: out.KillerSize,
	}
	rank := g.leaderboard.Consider(result)

	if err := g.outputManager.WriteSession(result); err != nil {
		slog.Error("failed to write session", "error", err)
	}

	slog.Info("game_over",
		"session", result.Session,
		"score", result.Score,
		"final_size", result.FinalSize,
		"tick", result.Ticks,
		"sim_time", result.SimTimeSec,
		"killer", result.Killer,
		"killer_size", result.KillerSize,
		"rank", rank,
	)
	g.lastRank = rank
}

// GameOverEvent returns the terminal report. ok is false while the game runs.
func (g *Game) GameOverEvent() (GameOverEvent, bool) {
	if !g.over {
		return GameOverEvent{}, false
	}
	return GameOverEvent{
		Session:    g.Session(),
		FinalScore: g.score,
		FinalSize:  g.player.Body.Size,
		Tick:       g.tick,
		SimTime:    g.simTime,
		Killer:     g.killer,
		KillerSize: g.killerSize,
		Rank:       g.lastRank,
	}, true
}
