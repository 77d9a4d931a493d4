package game

import (
	"math"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Step advances the arena by dt seconds. Once the game is over Step is a
// no-op that reports the final state.
func (g *Game) Step(dt float64) TickResult {
	if g.over {
		return g.result(0, 0)
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		dt = 0
	}

	pc := g.perfCollector
	pc.StartTick()
	defer pc.EndTick()

	g.tick++
	g.simTime += dt

	pc.StartPhase(telemetry.PhaseSteering)
	g.updatePlayer(dt)

	pc.StartPhase(telemetry.PhaseRoaming)
	g.updateFish(dt)

	pc.StartPhase(telemetry.PhaseBubbles)
	g.updateBubbles(dt)

	pc.StartPhase(telemetry.PhaseHygiene)
	g.removeInvalid()

	pc.StartPhase(telemetry.PhaseCollision)
	g.gatherRefs()
	out := systems.Resolve(&g.player, g.fishRefs, g.foodRefs, g.rules)
	g.score += out.ScoreGained

	pc.StartPhase(telemetry.PhaseCleanup)
	g.removeEaten()
	g.recordOutcome(out)

	if out.GameOver {
		g.endSession(out)
	} else {
		pc.StartPhase(telemetry.PhaseSpawn)
		g.removeRisenBubbles()
		g.updateSpawns(dt)
	}

	pc.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	return g.result(dt, out.ScoreGained)
}

// updatePlayer consumes input, steers and wraps the player.
func (g *Game) updatePlayer(dt float64) {
	g.input.consume()
	if target, ok := g.input.steerTarget(g.player.Pos, g.cfg.Input.JoystickReach); ok {
		systems.Seek(&g.player, target, dt, g.seekParams)
	}
	systems.Wrap(&g.player.Pos, g.bounds)
}

// updateFish moves every fish along its wander heading and wraps it.
func (g *Game) updateFish(dt float64) {
	query := g.fishFilter.Query()
	for query.Next() {
		pos, dir, _, vit, fish := query.Get()
		systems.Wander(pos, dir, fish, vit.Speed, dt, g.wanderParams, g.rng)
		systems.Wrap(pos, g.bounds)
	}
}

// updateBubbles rises every bubble.
func (g *Game) updateBubbles(dt float64) {
	query := g.bubbleFilter.Query()
	for query.Next() {
		pos, _, bubble := query.Get()
		systems.RiseBubble(pos, *bubble, dt, g.bubbleParams)
	}
}

// gatherRefs snapshots fish and food into resolution refs. The refs alias
// ECS storage and are valid until the next structural change.
func (g *Game) gatherRefs() {
	g.fishSlab = g.fishSlab[:0]
	fq := g.fishFilter.Query()
	for fq.Next() {
		pos, _, body, vit, fish := fq.Get()
		g.fishSlab = append(g.fishSlab, systems.FishRef{
			Entity: fq.Entity(),
			Pos:    pos,
			Body:   body,
			Vitals: vit,
			Fish:   fish,
		})
	}
	for k := range g.fishRefs {
		g.fishRefs[k] = g.fishRefs[k][:0]
	}
	for i := range g.fishSlab {
		ref := &g.fishSlab[i]
		g.fishRefs[ref.Fish.Kind] = append(g.fishRefs[ref.Fish.Kind], ref)
	}

	g.foodSlab = g.foodSlab[:0]
	dq := g.foodFilter.Query()
	for dq.Next() {
		pos, body, _ := dq.Get()
		g.foodSlab = append(g.foodSlab, systems.FoodRef{Entity: dq.Entity(), Pos: pos, Body: body})
	}
	g.foodRefs = g.foodRefs[:0]
	for i := range g.foodSlab {
		g.foodRefs = append(g.foodRefs, &g.foodSlab[i])
	}
}

// recordOutcome turns a resolution outcome into telemetry events.
func (g *Game) recordOutcome(out systems.Outcome) {
	size := g.player.Body.Size
	for k := 0; k < components.NumKinds; k++ {
		kind := components.Kind(k)
		if n := out.PlayerAteFish[k]; n > 0 {
			g.record(telemetry.NewPlayerMealEvent(g.tick, kind, n, size))
		}
		if n := out.FishLost[k]; n > 0 {
			g.record(telemetry.NewFishMealEvent(g.tick, kind, n))
		}
	}
	if out.PlayerAteFood > 0 {
		g.record(telemetry.NewPlayerFoodEvent(g.tick, out.PlayerAteFood, size))
	}
	if out.FishAteFood > 0 {
		g.record(telemetry.NewFishFoodEvent(g.tick, out.FishAteFood))
	}
	if out.GameOver {
		g.record(telemetry.NewGameOverEvent(g.tick, out.Killer, out.KillerSize))
	}
}

// result builds the tick report from current state.
func (g *Game) result(dt float64, gained int) TickResult {
	return TickResult{
		Session:     g.Session(),
		Tick:        g.tick,
		DT:          dt,
		SimTime:     g.simTime,
		Score:       g.score,
		ScoreGained: gained,
		PlayerSize:  g.player.Body.Size,
		PlayerX:     g.player.Pos.X,
		PlayerY:     g.player.Pos.Y,
		GameOver:    g.over,
		Counts:      g.Counts(),
	}
}
