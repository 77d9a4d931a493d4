// Package systems contains the per-tick update rules for the arena.
package systems

import "github.com/pthm-cable/reef/components"

// Bounds represents the arena rectangle.
type Bounds struct {
	Width, Height float64
}

// Wrap teleports a position that left the arena to the opposite edge.
// A coordinate below zero moves to the far edge; one at or past the far
// edge moves to zero. Coordinates are never clamped.
func Wrap(pos *components.Position, b Bounds) {
	if pos.X < 0 {
		pos.X = b.Width
	} else if pos.X >= b.Width {
		pos.X = 0
	}

	if pos.Y < 0 {
		pos.Y = b.Height
	} else if pos.Y >= b.Height {
		pos.Y = 0
	}
}

// Advance moves pos along dir by speed * dt * frameScale.
func Advance(pos *components.Position, dir components.Heading, speed, dt, frameScale float64) {
	step := speed * dt * frameScale
	pos.X += dir.DX * step
	pos.Y += dir.DY * step
}

// ValidPosition reports whether a position has finite coordinates.
func ValidPosition(pos components.Position) bool {
	return finite(pos.X, pos.Y)
}

// ValidBody reports whether a size is finite and strictly positive.
func ValidBody(body components.Body) bool {
	return finite(body.Size) && body.Size > 0
}

// ValidVitals reports whether speed and health are finite and speed is not negative.
func ValidVitals(vit components.Vitals) bool {
	return finite(vit.Speed, vit.Health) && vit.Speed >= 0
}
