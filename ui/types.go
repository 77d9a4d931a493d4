// Package ui draws the viewer's heads-up display and control panels.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// Origin returns the top-left corner of a w×h panel anchored inside a
// screen of the given size, inset by margin.
func (a PanelAnchor) Origin(w, h, screenW, screenH, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	case AnchorCenter:
		return (screenW - w) / 2, (screenH - h) / 2
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Highlight      rl.Color
	Danger         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 25, B: 40, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 110, B: 140, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		BarBg:          rl.Color{R: 30, G: 40, B: 50, A: 255},
		BarFill:        rl.Color{R: 100, G: 180, B: 220, A: 255},
		Highlight:      rl.Color{R: 255, G: 210, B: 90, A: 255},
		Danger:         rl.Color{R: 220, G: 90, B: 80, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 18,
	}
}
