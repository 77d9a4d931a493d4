package game

import "math"

// AutopilotParams tunes the headless pilot.
type AutopilotParams struct {
	FleeRadius float64 // steer away from larger fish closer than this (edge to edge)
}

// Autopilot picks a steering target from a snapshot: away from the nearest
// threatening fish if one is close, otherwise toward the nearest meal.
// ok is false when there is nothing worth steering for.
func Autopilot(s Snapshot, p AutopilotParams) (x, y float64, ok bool) {
	pl := s.Player

	var threat *EntityView
	threatDist := math.Inf(1)
	var prey *EntityView
	preyDist := math.Inf(1)

	consider := func(views []EntityView) {
		for i := range views {
			v := &views[i]
			dx, dy := wrapDelta(v.X-pl.X, s.Width), wrapDelta(v.Y-pl.Y, s.Height)
			d := math.Hypot(dx, dy)
			if v.Size >= pl.Size {
				gap := d - (v.Size+pl.Size)/2
				if gap < p.FleeRadius && gap < threatDist {
					threat, threatDist = v, gap
				}
				continue
			}
			if d < preyDist {
				prey, preyDist = v, d
			}
		}
	}
	consider(s.Enemy)
	consider(s.Small)
	consider(s.Food)

	if threat != nil {
		dx, dy := wrapDelta(pl.X-threat.X, s.Width), wrapDelta(pl.Y-threat.Y, s.Height)
		n := math.Hypot(dx, dy)
		if n == 0 {
			dx, dy, n = 1, 0, 1
		}
		return pl.X + dx/n*p.FleeRadius*2, pl.Y + dy/n*p.FleeRadius*2, true
	}
	if prey != nil {
		return pl.X + wrapDelta(prey.X-pl.X, s.Width), pl.Y + wrapDelta(prey.Y-pl.Y, s.Height), true
	}
	return 0, 0, false
}

// wrapDelta folds d into the shortest signed offset on a ring of the given size.
func wrapDelta(d, size float64) float64 {
	if size <= 0 {
		return d
	}
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}
