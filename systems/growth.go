package systems

import (
	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
)

// Grow increases size by amount and recalibrates speed along the curve.
// Non-positive or non-finite amounts are ignored so size never shrinks.
func Grow(body *components.Body, vit *components.Vitals, amount float64, curve config.SpeedCurve) {
	if !(amount > 0) || !finite(amount) {
		return
	}
	body.Size += amount
	vit.Speed = curve.SpeedFor(body.Size)
}
