package camera

import (
	"math"
	"testing"
)

func TestNewFitsArena(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 || cam.FitZoom != 0.5 {
		t.Errorf("expected zoom 0.5, got %f (fit %f)", cam.Zoom, cam.FitZoom)
	}

	// Letterboxed: the tighter axis decides
	cam = New(800, 600, 1600, 800)
	if math.Abs(cam.FitZoom-0.5) > 1e-9 {
		t.Errorf("expected fit zoom 0.5, got %f", cam.FitZoom)
	}
	if w := cam.WorldW * cam.Zoom; w > cam.ViewportW+1e-9 {
		t.Errorf("arena width %f overflows viewport %f", w, cam.ViewportW)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1280, 720)

	sx, sy := cam.WorldToScreen(640, 360)
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	// Identity when the arena matches the window
	sx, sy = cam.WorldToScreen(100, 50)
	if math.Abs(sx-100) > 1e-9 || math.Abs(sy-50) > 1e-9 {
		t.Errorf("expected (100, 50), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)
	cam.X = 100 // Near left edge

	// Entity at world right edge should appear on the left side of screen
	sx, _ := cam.WorldToScreen(2500, 720)
	if sx >= 640 {
		t.Errorf("expected entity on left of screen, got x=%f", sx)
	}

	cam.Pan(-400, 0)
	if cam.X < 2000 {
		t.Errorf("expected X to wrap around, got %f", cam.X)
	}
}

func TestAppendGhosts(t *testing.T) {
	cam := New(1000, 1000, 1000, 1000)

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		want   int
	}{
		{"interior", 500, 500, 10, 0},
		{"left edge", 3, 500, 10, 1},
		{"bottom edge", 500, 995, 10, 1},
		{"corner", 2, 998, 10, 3},
	}
	for _, tt := range tests {
		got := cam.AppendGhosts(nil, tt.x, tt.y, tt.radius)
		if len(got) != tt.want {
			t.Errorf("%s: %d ghosts, want %d", tt.name, len(got), tt.want)
		}
	}

	// A left-edge circle gets a copy at the right edge
	g := cam.AppendGhosts(nil, 3, 500, 10)
	if math.Abs(g[0].X-1003) > 1e-9 || g[0].Y != 500 {
		t.Errorf("ghost at (%f,%f), want (1003,500)", g[0].X, g[0].Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}
	cam.SetZoom(10.0)
	if cam.Zoom != 2.0 {
		t.Errorf("expected zoom clamped to 2.0, got %f", cam.Zoom)
	}
}

func TestResizeKeepsRelativeZoom(t *testing.T) {
	cam := New(1280, 720, 1280, 720)
	cam.ZoomBy(2)

	cam.Resize(640, 360)
	if math.Abs(cam.FitZoom-0.5) > 1e-9 || math.Abs(cam.Zoom-1) > 1e-9 {
		t.Errorf("after resize fit/zoom = %f/%f, want 0.5/1", cam.FitZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	// Visible range in world coords: (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestArenaRect(t *testing.T) {
	cam := New(1000, 600, 500, 500)
	x, y, w, h := cam.ArenaRect()
	// fit zoom 1.2: arena is 600x600 centred horizontally
	if math.Abs(x-200) > 1e-9 || y != 0 || math.Abs(w-600) > 1e-9 || math.Abs(h-600) > 1e-9 {
		t.Errorf("ArenaRect = %f,%f %fx%f, want 200,0 600x600", x, y, w, h)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 1.5

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected position (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom 0.5, got %f", cam.Zoom)
	}
}
