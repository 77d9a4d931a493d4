package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSizeStats(t *testing.T) {
	values := []float64{10, 2, 8, 4, 6}
	s := ComputeSizeStats(values)

	if math.Abs(s.Mean-6) > 1e-9 {
		t.Errorf("mean = %v, want 6", s.Mean)
	}
	// Sample standard deviation: sqrt(40/4)
	if math.Abs(s.Std-math.Sqrt(10)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(10))
	}
	if math.Abs(s.P50-6) > 1e-9 {
		t.Errorf("p50 = %v, want 6", s.P50)
	}
	if math.Abs(s.P90-9.2) > 1e-9 {
		t.Errorf("p90 = %v, want 9.2", s.P90)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	// Input must not be reordered
	if values[0] != 10 || values[1] != 2 {
		t.Error("ComputeSizeStats modified its input")
	}
}

func TestComputeSizeStatsSmallSamples(t *testing.T) {
	if s := ComputeSizeStats(nil); s != (SizeStats{}) {
		t.Errorf("empty sample = %+v, want zero", s)
	}

	s := ComputeSizeStats([]float64{7})
	if s.Mean != 7 || s.Std != 0 || s.P50 != 7 || s.Max != 7 {
		t.Errorf("single sample = %+v, want mean/p50/max 7 and std 0", s)
	}
}
