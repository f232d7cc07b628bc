// Package mathutil provides small numeric helpers shared by the series
// and smoothing engines.
package mathutil

import "math"

// round3Factor is the scale used for 3-decimal rounding.
const round3Factor = 1000

// CeilDiv returns the ceiling of a divided by b. b must be positive.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Round3 rounds v to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*round3Factor) / round3Factor
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
