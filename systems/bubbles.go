package systems

import (
	"math"

	"github.com/pthm-cable/reef/components"
)

// BubbleParams holds bubble motion parameters.
type BubbleParams struct {
	FrameScale   float64
	WobbleAmp    float64
	WobblePeriod float64
}

// RiseBubble moves a bubble up and sways it sideways with its height.
func RiseBubble(pos *components.Position, b components.Bubble, dt float64, bp BubbleParams) {
	pos.Y -= b.Rise * dt * bp.FrameScale
	if bp.WobblePeriod > 0 {
		pos.X += math.Sin(pos.Y/bp.WobblePeriod) * bp.WobbleAmp
	}
}

// BubbleRisen reports whether a bubble has fully left through the top edge.
func BubbleRisen(pos components.Position, body components.Body) bool {
	return pos.Y+body.Size <= 0
}
