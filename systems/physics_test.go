package systems

import (
	"testing"

	"github.com/pthm-cable/reef/components"
)

func TestWrap(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside", 400, 300, 400, 300},
		{"at width", 800, 300, 0, 300},
		{"past width", 803, 300, 0, 300},
		{"below zero x", -0.5, 300, 800, 300},
		{"at height", 10, 600, 10, 0},
		{"below zero y", 10, -2, 10, 600},
		{"both edges", -1, 601, 800, 0},
		{"origin stays", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: tt.x, Y: tt.y}
			Wrap(&pos, b)
			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("Wrap(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	pos := components.Position{X: 10, Y: 10}
	Advance(&pos, components.Heading{DX: 0, DY: 1}, 3, 0.5, 60)
	if pos.X != 10 || pos.Y != 100 {
		t.Errorf("pos = %+v, want (10, 100)", pos)
	}
}

func TestValidity(t *testing.T) {
	if !ValidPosition(components.Position{X: 1, Y: 2}) {
		t.Error("finite position should be valid")
	}
	if ValidPosition(components.Position{X: nan(), Y: 2}) {
		t.Error("NaN position should be invalid")
	}
	if ValidBody(components.Body{Size: 0}) {
		t.Error("zero size should be invalid")
	}
	if !ValidBody(components.Body{Size: 0.1}) {
		t.Error("positive size should be valid")
	}
	if ValidVitals(components.Vitals{Speed: nan(), Health: 10}) {
		t.Error("NaN speed should be invalid")
	}
	if ValidVitals(components.Vitals{Speed: -1, Health: 10}) {
		t.Error("negative speed should be invalid")
	}
	if !ValidVitals(components.Vitals{Speed: 0, Health: 100}) {
		t.Error("zero speed should be valid")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
