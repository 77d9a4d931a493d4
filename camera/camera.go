// Package camera maps arena coordinates onto the viewer window.
package camera

import "math"

// Point is a screen position.
type Point struct {
	X, Y float64
}

// Camera controls the viewport into the arena.
// The arena wraps on both axes, so positions are resolved to the copy
// nearest the view centre.
type Camera struct {
	// Position is the view centre in world coordinates
	X, Y float64

	// Zoom is screen pixels per world unit
	Zoom float64

	ViewportW, ViewportH float64
	WorldW, WorldH       float64

	// FitZoom shows the whole arena; it is also the lower zoom limit
	FitZoom, MaxZoom float64
}

// New creates a camera centred on the arena, zoomed to fit it in the viewport.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.refit()
	c.Reset()
	return c
}

// refit recomputes the zoom limits for the current viewport.
func (c *Camera) refit() {
	// At zoom Z the visible area is (viewportW/Z, viewportH/Z); the arena
	// fits when both are at least the world size.
	c.FitZoom = math.Min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.MaxZoom = c.FitZoom * 4
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen coordinates to arena coordinates, wrapped
// into [0, size).
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom
	return mod(c.X+dx, c.WorldW), mod(c.Y+dy, c.WorldH)
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(length float64) float64 {
	return length * c.Zoom
}

// ArenaRect returns the screen rectangle covered by one copy of the arena
// around the view centre, clipped to the viewport.
func (c *Camera) ArenaRect() (x, y, w, h float64) {
	x = math.Max(0, c.ViewportW/2-c.WorldW/2*c.Zoom)
	y = math.Max(0, c.ViewportH/2-c.WorldH/2*c.Zoom)
	w = math.Min(c.ViewportW, c.WorldW*c.Zoom)
	h = math.Min(c.ViewportH, c.WorldH*c.Zoom)
	return x, y, w, h
}

// IsVisible reports whether a circle at (wx, wy) of the given radius
// could be on screen. Conservative, for culling.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)

	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// AppendGhosts appends the screen positions of extra copies of a circle
// that straddles a wrap edge, so it shows on both sides. At most three
// are added (a corner needs three).
func (c *Camera) AppendGhosts(dst []Point, wx, wy, radius float64) []Point {
	dx := toroidalDelta(wx, c.X, c.WorldW)
	dy := toroidalDelta(wy, c.Y, c.WorldH)

	gx, hasX := ghostOffset(dx, radius, c.WorldW)
	gy, hasY := ghostOffset(dy, radius, c.WorldH)

	sx := c.ViewportW/2 + dx*c.Zoom
	sy := c.ViewportH/2 + dy*c.Zoom
	gsx := c.ViewportW/2 + gx*c.Zoom
	gsy := c.ViewportH/2 + gy*c.Zoom

	if hasX {
		dst = append(dst, Point{gsx, sy})
	}
	if hasY {
		dst = append(dst, Point{sx, gsy})
	}
	if hasX && hasY {
		dst = append(dst, Point{gsx, gsy})
	}
	return dst
}

// ghostOffset returns the offset of the wrapped copy for a delta within
// radius of the half-size boundary.
func ghostOffset(d, radius, size float64) (float64, bool) {
	switch {
	case d > size/2-radius:
		return d - size, true
	case d < -size/2+radius:
		return d + size, true
	}
	return d, false
}

// Resize updates viewport dimensions and keeps the zoom relative to fit.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	rel := c.Zoom / c.FitZoom
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.refit()
	c.SetZoom(c.FitZoom * rel)
}

// Follow centres the view on a world point.
func (c *Camera) Follow(wx, wy float64) {
	c.X = mod(wx, c.WorldW)
	c.Y = mod(wy, c.WorldH)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Follow(c.X+dx/c.Zoom, c.Y+dy/c.Zoom)
}

// SetZoom sets the zoom level, clamped to [FitZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.FitZoom, math.Min(c.MaxZoom, zoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the arena centre at fit zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.FitZoom
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float64) float64 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's math.Mod can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
