package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// spawnInitialPopulation seeds every pool up to its configured initial count.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Small.Initial; i++ {
		g.spawnFish(components.KindSmall)
	}
	for i := 0; i < g.cfg.Enemy.Initial; i++ {
		g.spawnFish(components.KindEnemy)
	}
	for i := 0; i < g.cfg.Food.Initial; i++ {
		g.spawnFood()
	}
	for i := 0; i < g.cfg.Bubbles.Initial; i++ {
		g.spawnBubble()
	}
}

// uniform samples r. A degenerate range returns Min.
func (g *Game) uniform(r config.Range) float64 {
	return r.Min + g.rng.Float64()*(r.Max-r.Min)
}

// randomPosition returns a uniformly distributed point in the arena.
func (g *Game) randomPosition() components.Position {
	return components.Position{
		X: g.rng.Float64() * g.bounds.Width,
		Y: g.rng.Float64() * g.bounds.Height,
	}
}

// spawnFish adds a fish of the given kind at a random point.
// Returns false if the pool is at its cap.
func (g *Game) spawnFish(kind components.Kind) bool {
	fc := g.fishConfig(kind)
	return g.spawnFishAt(kind, g.randomPosition(), g.uniform(fc.Size), g.uniform(fc.Speed))
}

// spawnFishAt adds a fish with explicit placement and attributes.
func (g *Game) spawnFishAt(kind components.Kind, pos components.Position, size, speed float64) bool {
	if g.numFish[kind] >= g.fishCap(kind) {
		return false
	}

	fc := g.fishConfig(kind)
	dir := systems.RandomHeading(g.rng)
	body := components.Body{Size: size}
	vit := components.Vitals{Speed: speed, Health: fc.Health}
	fish := components.Fish{Kind: kind}

	g.fishMapper.NewEntity(&pos, &dir, &body, &vit, &fish)
	g.numFish[kind]++
	return true
}

// spawnFood adds one food item at a random point.
func (g *Game) spawnFood() bool {
	return g.spawnFoodAt(g.randomPosition())
}

func (g *Game) spawnFoodAt(pos components.Position) bool {
	if g.numFood >= g.cfg.Food.Cap {
		return false
	}
	body := components.Body{Size: g.cfg.Food.Size}
	g.foodMapper.NewEntity(&pos, &body, &components.Food{})
	g.numFood++
	return true
}

// spawnBubble adds a bubble just below the bottom edge. Bubbles are uncapped.
func (g *Game) spawnBubble() {
	bc := g.cfg.Bubbles
	pos := components.Position{
		X: g.rng.Float64() * g.bounds.Width,
		Y: g.bounds.Height + g.rng.Float64()*bc.Depth,
	}
	body := components.Body{Size: g.uniform(bc.Size)}
	bubble := components.Bubble{Rise: g.uniform(bc.Rise)}
	g.bubbleMapper.NewEntity(&pos, &body, &bubble)
	g.numBubbles++
}

// updateSpawns advances the recurring spawn timers. Over-cap requests are dropped.
func (g *Game) updateSpawns(dt float64) {
	if g.rng.Float64() < g.cfg.Bubbles.SpawnChance {
		g.spawnBubble()
	}

	for k := 0; k < components.NumKinds; k++ {
		kind := components.Kind(k)
		if g.fishTimers[k].Advance(dt) && g.spawnFish(kind) {
			g.record(telemetry.NewSpawnEvent(g.tick, kind))
		}
	}

	if g.foodTimer.Advance(dt) {
		spawned := 0
		for i := 0; i < g.cfg.Food.Batch; i++ {
			if g.spawnFood() {
				spawned++
			}
		}
		if spawned > 0 {
			g.record(telemetry.NewFoodSpawnEvent(g.tick, spawned))
		}
	}
}

// removeInvalid drops entities whose state is non-finite or non-positive.
// A broken player is recentred, and a broken player body is reset to
// its starting size and speed. Must be called outside queries.
func (g *Game) removeInvalid() {
	if !systems.ValidPosition(g.player.Pos) {
		slog.Warn("invalid_entity", "session", g.Session(), "entity", "player", "tick", g.tick)
		g.player.Pos = components.Position{X: g.bounds.Width / 2, Y: g.bounds.Height / 2}
	}
	if !systems.ValidBody(g.player.Body) || !systems.ValidVitals(g.player.Vitals) {
		slog.Warn("invalid_entity", "session", g.Session(), "entity", "player_body", "tick", g.tick)
		fresh := g.freshPlayer()
		g.player.Body = fresh.Body
		g.player.Vitals = fresh.Vitals
	}

	removed := 0

	// First pass: collect invalid fish (must complete before modifying)
	type invalidFish struct {
		entity ecs.Entity
		kind   components.Kind
	}
	var badFish []invalidFish

	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, _, body, _, fish := fq.Get()
		if !systems.ValidPosition(*pos) || !systems.ValidBody(*body) {
			badFish = append(badFish, invalidFish{entity: fq.Entity(), kind: fish.Kind})
		}
	}
	for _, bad := range badFish {
		slog.Warn("invalid_entity", "session", g.Session(), "entity", bad.kind.String(), "tick", g.tick)
		g.fishMapper.Remove(bad.entity)
		g.numFish[bad.kind]--
		removed++
	}

	g.doomed = g.doomed[:0]
	dq := g.foodFilter.Query()
	for dq.Next() {
		pos, body, _ := dq.Get()
		if !systems.ValidPosition(*pos) || !systems.ValidBody(*body) {
			g.doomed = append(g.doomed, dq.Entity())
		}
	}
	for _, e := range g.doomed {
		slog.Warn("invalid_entity", "session", g.Session(), "entity", "food", "tick", g.tick)
		g.foodMapper.Remove(e)
		g.numFood--
		removed++
	}

	if removed > 0 {
		g.record(telemetry.NewInvalidRemovedEvent(g.tick, removed))
	}
}

// removeEaten compacts storage after a resolution pass.
func (g *Game) removeEaten() {
	for k := 0; k < components.NumKinds; k++ {
		for _, f := range g.fishRefs[k] {
			if f.Eaten {
				g.fishMapper.Remove(f.Entity)
				g.numFish[k]--
			}
		}
	}
	for _, fd := range g.foodRefs {
		if fd.Eaten {
			g.foodMapper.Remove(fd.Entity)
			g.numFood--
		}
	}
}

// removeRisenBubbles drops bubbles that have cleared the top edge.
func (g *Game) removeRisenBubbles() {
	g.doomed = g.doomed[:0]
	query := g.bubbleFilter.Query()
	for query.Next() {
		pos, body, _ := query.Get()
		if systems.BubbleRisen(*pos, *body) || !systems.ValidPosition(*pos) {
			g.doomed = append(g.doomed, query.Entity())
		}
	}
	for _, e := range g.doomed {
		g.bubbleMapper.Remove(e)
		g.numBubbles--
	}
}
