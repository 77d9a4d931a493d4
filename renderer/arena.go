package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/camera"
	"github.com/pthm-cable/reef/game"
)

// Palette holds entity colors.
type Palette struct {
	Player rl.Color
	Small  rl.Color
	Enemy  rl.Color
	Food   rl.Color
	Bubble rl.Color
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Player: rl.Color{R: 255, G: 170, B: 40, A: 255},
		Small:  rl.Color{R: 110, G: 220, B: 120, A: 255},
		Enemy:  rl.Color{R: 230, G: 70, B: 70, A: 255},
		Food:   rl.Color{R: 240, G: 230, B: 140, A: 255},
		Bubble: rl.Color{R: 200, G: 230, B: 255, A: 150},
	}
}

// ArenaRenderer draws a snapshot through a camera.
type ArenaRenderer struct {
	Water   *WaterBackground
	Palette Palette

	ghosts []camera.Point
}

// NewArenaRenderer creates a renderer with default styling.
func NewArenaRenderer() *ArenaRenderer {
	return &ArenaRenderer{
		Water:   NewWaterBackground(),
		Palette: DefaultPalette(),
	}
}

// Draw renders one frame of the arena, clipped to the arena rectangle.
// Entities straddling a wrap edge are drawn on both sides.
func (r *ArenaRenderer) Draw(s game.Snapshot, cam *camera.Camera) {
	x, y, w, h := cam.ArenaRect()
	ax, ay, aw, ah := int32(x), int32(y), int32(w), int32(h)

	rl.BeginScissorMode(ax, ay, aw, ah)
	r.Water.Draw(ax, ay, aw, ah, s.SimTime)

	for _, b := range s.Bubbles {
		r.each(cam, b, func(sx, sy, radius float32) {
			rl.DrawCircleLines(int32(sx), int32(sy), radius, r.Palette.Bubble)
		})
	}
	for _, f := range s.Food {
		r.each(cam, f, func(sx, sy, radius float32) {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, r.Palette.Food)
		})
	}
	r.drawFish(cam, s.Small, r.Palette.Small)
	r.drawFish(cam, s.Enemy, r.Palette.Enemy)
	r.drawFish(cam, []game.EntityView{s.Player}, r.Palette.Player)

	rl.EndScissorMode()
}

func (r *ArenaRenderer) drawFish(cam *camera.Camera, views []game.EntityView, color rl.Color) {
	for _, v := range views {
		heading := Heading(v.DX, v.DY)
		r.each(cam, v, func(sx, sy, radius float32) {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
			drawOrientedTriangle(sx, sy, heading, radius, color)
		})
	}
}

// each calls draw for the entity's primary screen position and any wrap ghosts.
func (r *ArenaRenderer) each(cam *camera.Camera, v game.EntityView, draw func(sx, sy, radius float32)) {
	radius := v.Size / 2
	if !cam.IsVisible(v.X, v.Y, radius) {
		return
	}
	pr := float32(math.Max(1, cam.Scale(radius)))

	sx, sy := cam.WorldToScreen(v.X, v.Y)
	draw(float32(sx), float32(sy), pr)

	r.ghosts = cam.AppendGhosts(r.ghosts[:0], v.X, v.Y, radius)
	for _, g := range r.ghosts {
		draw(float32(g.X), float32(g.Y), pr)
	}
}

// Heading converts a facing vector to an angle in radians. A zero vector faces +X.
func Heading(dx, dy float64) float32 {
	if dx == 0 && dy == 0 {
		return 0
	}
	return float32(math.Atan2(dy, dx))
}

// TailVertices returns the tail fin triangle for a fish of the given radius
// at (x, y) facing heading: the tip touches the body, the fin trails behind.
func TailVertices(x, y, heading, radius float32) (tip, left, right rl.Vector2) {
	back := float64(heading) + math.Pi
	cos := float32(math.Cos(back))
	sin := float32(math.Sin(back))

	tip = rl.Vector2{X: x + cos*radius*0.8, Y: y + sin*radius*0.8}

	spread := 0.45
	la := back + spread
	ra := back - spread
	left = rl.Vector2{X: x + float32(math.Cos(la))*radius*1.7, Y: y + float32(math.Sin(la))*radius*1.7}
	right = rl.Vector2{X: x + float32(math.Cos(ra))*radius*1.7, Y: y + float32(math.Sin(ra))*radius*1.7}
	return tip, left, right
}

// drawOrientedTriangle draws the tail fin behind the body.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	v1, v2, v3 := TailVertices(x, y, heading, radius)
	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangle(v1, v2, v3, color)
}
