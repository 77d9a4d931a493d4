package ui

import (
	"math"
	"testing"

	"github.com/pthm-cable/reef/telemetry"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00.0"},
		{5.25, "0:05.2"},
		{61.5, "1:01.5"},
		{600, "10:00.0"},
		{-3, "0:00.0"},
		{math.NaN(), "0:00.0"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.sec); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestAnchorOrigin(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 690, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 690, 490},
		{AnchorCenter, 350, 250},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Origin(100, 100, 800, 600, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d origin = (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		value, max, want float64
	}{
		{5, 10, 0.5},
		{15, 10, 1},
		{-1, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := barRatio(tt.value, tt.max); got != tt.want {
			t.Errorf("barRatio(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestLeaderboardLine(t *testing.T) {
	got := LeaderboardLine(1, telemetry.SessionResult{Score: 42, FinalSize: 17.5, SimTimeSec: 75})
	want := " 1.    42  size  17.5  1:15.0"
	if got != want {
		t.Errorf("LeaderboardLine = %q, want %q", got, want)
	}
}
