// Package renderer draws arena snapshots with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WaterBackground draws the arena backdrop: a depth gradient with slow
// drifting light bands.
type WaterBackground struct {
	Top, Bottom rl.Color
	Band        rl.Color
	Bands       int
}

// NewWaterBackground creates the default backdrop.
func NewWaterBackground() *WaterBackground {
	return &WaterBackground{
		Top:    rl.Color{R: 20, G: 90, B: 140, A: 255},
		Bottom: rl.Color{R: 5, G: 25, B: 55, A: 255},
		Band:   rl.Color{R: 255, G: 255, B: 255, A: 12},
		Bands:  6,
	}
}

// Draw fills the rectangle at simulated time t (seconds).
func (w *WaterBackground) Draw(x, y, width, height int32, t float64) {
	rl.DrawRectangleGradientV(x, y, width, height, w.Top, w.Bottom)

	for i := 0; i < w.Bands; i++ {
		phase := float64(i)/float64(w.Bands)*2*math.Pi + t*0.3
		bx := x + int32(float64(width)*(0.5+0.45*math.Sin(phase)))
		bw := int32(float64(width) * 0.04)
		rl.DrawRectangle(bx-bw/2, y, bw, height, w.Band)
	}
}
