package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/telemetry"
)

// GameOverPanel shows the final result and the leaderboard.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	rows     int
}

// NewGameOverPanel creates a panel listing up to rows leaderboard entries.
func NewGameOverPanel(rows int) *GameOverPanel {
	return &GameOverPanel{renderer: NewRenderer(), width: 360, rows: rows}
}

// Draw renders the panel centred on screen. Returns ActionRestart when
// the player asks for another round.
func (p *GameOverPanel) Draw(ev game.GameOverEvent, board []telemetry.SessionResult, screenW, screenH int32) Action {
	r := p.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight

	rows := min(len(board), p.rows)
	height := 40 + lh*4 + r.Theme.HeaderFontSize + 6 + lh*int32(rows) + 50 + pad*2
	x, y := AnchorCenter.Origin(p.width, height, screenW, screenH, pad)
	r.DrawPanel(x, y, p.width, height)

	left := x + pad
	y += pad
	rl.DrawText("GAME OVER", left, y, 32, r.Theme.Danger)
	y += 40

	y = r.DrawLabelValue(left, y, "Score", fmt.Sprintf("%d", ev.FinalScore))
	y = r.DrawLabelValue(left, y, "Size", fmt.Sprintf("%.1f", ev.FinalSize))
	y = r.DrawLabelValue(left, y, "Eaten by", fmt.Sprintf("%s (size %.1f)", ev.Killer, ev.KillerSize))
	y = r.DrawLabelValue(left, y, "Lasted", FormatClock(ev.SimTime))

	y = r.DrawSectionHeader(left, y, "Leaderboard")
	for i := 0; i < rows; i++ {
		e := board[i]
		color := r.Theme.LabelColor
		if e.Session == ev.Session {
			color = r.Theme.Highlight
		}
		rl.DrawText(LeaderboardLine(i+1, e), left, y, r.Theme.FontSize, color)
		y += lh
	}

	y += 10
	if gui.Button(rl.Rectangle{X: float32(left), Y: float32(y), Width: 140, Height: 30}, "Play again") {
		return ActionRestart
	}
	return ActionNone
}

// LeaderboardLine formats one leaderboard row.
func LeaderboardLine(rank int, e telemetry.SessionResult) string {
	return fmt.Sprintf("%2d. %5d  size %5.1f  %s", rank, e.Score, e.FinalSize, FormatClock(e.SimTimeSec))
}
