package systems

import "github.com/pthm-cable/reef/components"

// SeekParams holds player steering parameters.
type SeekParams struct {
	DeadZone   float64
	FrameScale float64
}

// Seek turns the player toward target and moves it when outside the dead zone.
// A target exactly on the player leaves both position and facing untouched.
// Returns true if the player moved.
func Seek(p *components.Player, target components.Position, dt float64, sp SeekParams) bool {
	dx := target.X - p.Pos.X
	dy := target.Y - p.Pos.Y
	dist := length(dx, dy)
	if dist == 0 || !finite(dist) {
		return false
	}

	p.Dir = components.Heading{DX: dx / dist, DY: dy / dist}
	if dist <= sp.DeadZone {
		return false
	}

	Advance(&p.Pos, p.Dir, p.Vitals.Speed, dt, sp.FrameScale)
	return true
}

// JoystickTarget converts a direction in [-1,1]² into a point reach units
// ahead of origin. The second result is false for a zero direction.
func JoystickTarget(origin components.Position, dx, dy, reach float64) (components.Position, bool) {
	dx, dy = clampUnit(dx), clampUnit(dy)
	if dx == 0 && dy == 0 {
		return origin, false
	}
	return components.Position{X: origin.X + dx*reach, Y: origin.Y + dy*reach}, true
}
