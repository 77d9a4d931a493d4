package game

import (
	"math"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/systems"
)

type inputMode uint8

const (
	inputNone inputMode = iota
	inputTarget
	inputDirection
)

// control is one steering command. It stays in effect until replaced.
type control struct {
	mode   inputMode
	target components.Position
	dx, dy float64
}

// inputState buffers the latest submitted command until the next tick.
type inputState struct {
	pending bool
	next    control
	active  control
}

func (in *inputState) setTarget(pos components.Position) {
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) {
		return
	}
	in.next = control{mode: inputTarget, target: pos}
	in.pending = true
}

// setDirection takes a joystick vector. The zero vector releases steering.
func (in *inputState) setDirection(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	dx = math.Max(-1, math.Min(1, dx))
	dy = math.Max(-1, math.Min(1, dy))
	if dx == 0 && dy == 0 {
		in.next = control{}
	} else {
		in.next = control{mode: inputDirection, dx: dx, dy: dy}
	}
	in.pending = true
}

// consume promotes the pending command, if any.
func (in *inputState) consume() {
	if in.pending {
		in.active = in.next
		in.pending = false
	}
}

// steerTarget resolves the active command to a world point for a player at origin.
func (in *inputState) steerTarget(origin components.Position, reach float64) (components.Position, bool) {
	switch in.active.mode {
	case inputTarget:
		return in.active.target, true
	case inputDirection:
		return systems.JoystickTarget(origin, in.active.dx, in.active.dy, reach)
	default:
		return origin, false
	}
}

// SetTarget queues a steering target in world coordinates.
// Non-finite points are ignored.
func (g *Game) SetTarget(x, y float64) {
	g.input.setTarget(components.Position{X: x, Y: y})
}

// SetDirection queues a direction input in [-1,1]² (clamped).
func (g *Game) SetDirection(dx, dy float64) {
	g.input.setDirection(dx, dy)
}
