package renderer

import (
	"math"
	"testing"
)

func TestHeading(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   float64
	}{
		{1, 0, 0},
		{0, 1, math.Pi / 2},
		{-1, 0, math.Pi},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Heading(tt.dx, tt.dy); math.Abs(float64(got)-tt.want) > 1e-6 {
			t.Errorf("Heading(%v,%v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestTailVerticesTrailBehind(t *testing.T) {
	// Facing +X: the whole fin sits at negative X
	tip, left, right := TailVertices(0, 0, 0, 10)
	for _, v := range []struct{ X, Y float32 }{{tip.X, tip.Y}, {left.X, left.Y}, {right.X, right.Y}} {
		if v.X >= 0 {
			t.Errorf("fin vertex (%v,%v) ahead of the body", v.X, v.Y)
		}
	}
	if math.Abs(float64(tip.X+8)) > 1e-4 || math.Abs(float64(tip.Y)) > 1e-4 {
		t.Errorf("tip = (%v,%v), want (-8,0)", tip.X, tip.Y)
	}
	// Fin is symmetric about the heading
	if math.Abs(float64(left.Y+right.Y)) > 1e-4 || math.Abs(float64(left.X-right.X)) > 1e-4 {
		t.Errorf("fin not symmetric: left (%v,%v) right (%v,%v)", left.X, left.Y, right.X, right.Y)
	}
}
