package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/reef/components"
)

// WanderParams holds roaming parameters.
type WanderParams struct {
	Cooldown   float64 // seconds between heading changes
	MaxTurn    float64 // radians
	FrameScale float64
}

// Wander advances a fish along its heading and perturbs the heading once
// the wander timer reaches the cooldown.
func Wander(pos *components.Position, dir *components.Heading, fish *components.Fish, speed, dt float64, wp WanderParams, rng *rand.Rand) {
	Advance(pos, *dir, speed, dt, wp.FrameScale)

	fish.WanderTimer += dt
	if fish.WanderTimer >= wp.Cooldown {
		turn := (rng.Float64()*2 - 1) * wp.MaxTurn
		angle := math.Atan2(dir.DY, dir.DX) + turn
		*dir = HeadingFromAngle(angle)
		fish.WanderTimer = 0
	}
}

// HeadingFromAngle returns the unit heading for an angle in radians.
func HeadingFromAngle(angle float64) components.Heading {
	return components.Heading{DX: math.Cos(angle), DY: math.Sin(angle)}
}

// RandomHeading returns a uniformly distributed unit heading.
func RandomHeading(rng *rand.Rand) components.Heading {
	return HeadingFromAngle(rng.Float64() * 2 * math.Pi)
}
