package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/game"
)

// Action is a request raised by a panel button.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionResume
	ActionRestart
)

// ControlsPanel renders the pause and restart buttons.
type ControlsPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
}

// NewControlsPanel creates a controls panel at the given anchor.
func NewControlsPanel(anchor PanelAnchor) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), anchor: anchor}
}

// Draw renders the buttons for the current driver state and returns the
// action clicked this frame.
func (c *ControlsPanel) Draw(state game.State, screenW, screenH int32) Action {
	const buttonW, buttonH = 110, 30
	pad := c.renderer.Theme.Padding
	w := int32(buttonW*2) + pad*3
	h := int32(buttonH) + pad*2
	x, y := c.anchor.Origin(w, h, screenW, screenH, pad)

	c.renderer.DrawPanel(x, y, w, h)

	first := rl.Rectangle{X: float32(x + pad), Y: float32(y + pad), Width: buttonW, Height: buttonH}
	second := first
	second.X += buttonW + float32(pad)

	action := ActionNone
	switch state {
	case game.StateRunning:
		if gui.Button(first, "Pause") {
			action = ActionPause
		}
	case game.StatePaused:
		if gui.Button(first, "Resume") {
			action = ActionResume
		}
	default:
		gui.Disable()
		gui.Button(first, "Pause")
		gui.Enable()
	}
	if gui.Button(second, "Restart") {
		action = ActionRestart
	}
	return action
}
