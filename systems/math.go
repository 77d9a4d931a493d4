package systems

import "math"

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// length returns the Euclidean length of a vector.
func length(x, y float64) float64 {
	return math.Hypot(x, y)
}

// clampUnit clamps v to [-1, 1]. NaN collapses to 0.
func clampUnit(v float64) float64 {
	if v != v {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
