package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/game"
)

// HUDData holds everything the main HUD shows.
type HUDData struct {
	Score      int
	PlayerSize float64
	Tick       int64
	SimTime    float64
	Counts     game.PoolCounts
	SmallCap   int
	EnemyCap   int
	FoodCap    int
	FPS        int32
	State      game.State
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), width: 260}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	height := r.Theme.HeaderFontSize + 6 + r.Theme.LineHeight*3 + (r.Theme.LineHeight+2)*3 + pad*2
	x, y := AnchorTopLeft.Origin(h.width, height, 0, 0, pad)

	r.DrawPanel(x, y, h.width, height)
	x += pad
	y += pad

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Score %d", data.Score))
	y = r.DrawLabelValue(x, y, "Size", fmt.Sprintf("%.1f", data.PlayerSize))
	y = r.DrawLabelValue(x, y, "Time", FormatClock(data.SimTime))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d  (%d fps)", data.Tick, data.FPS))

	barW := h.width - pad*2
	y = r.DrawBar(x, y, "Small", float64(data.Counts.Small), float64(data.SmallCap), barW)
	y = r.DrawBar(x, y, "Enemy", float64(data.Counts.Enemy), float64(data.EnemyCap), barW)
	r.DrawBar(x, y, "Food", float64(data.Counts.Food), float64(data.FoodCap), barW)

	if data.State == game.StatePaused {
		rl.DrawText("PAUSED", x+h.width+pad, pad, r.Theme.HeaderFontSize, r.Theme.Highlight)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// FormatClock renders seconds as m:ss.t. Negative and non-finite values show as zero.
func FormatClock(sec float64) string {
	if !(sec > 0) || math.IsInf(sec, 0) {
		sec = 0
	}
	tenths := int64(sec * 10)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
