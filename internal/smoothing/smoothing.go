// Package smoothing applies a causal moving average to chart series. The
// window shrinks at the start of the series rather than padding with nulls,
// so output length always equals input length.
package smoothing

import (
	"lifelog/internal/series"
	"lifelog/pkg/mathutil"
)

// Per-range smoothing windows.
const (
	window7d   = 2
	window30d  = 3
	window90d  = 5
	window365d = 7
	windowAll  = 10
)

// Window returns the moving-average window size for a chart range.
func Window(key series.RangeKey) int {
	switch key {
	case series.Range7d:
		return window7d
	case series.Range30d:
		return window30d
	case series.Range90d:
		return window90d
	case series.Range365d:
		return window365d
	case series.RangeAll:
		return windowAll
	default:
		return window7d
	}
}

// MovingAverage smooths values with a trailing window of the given size:
// output[i] averages values[max(0,i-window+1)..i]. Results are rounded to 3
// decimal places. A window of 1 or less is a pass-through.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 {
		return values
	}

	smoothed := make([]float64, len(values))
	sum := 0.0

	for i, v := range values {
		sum += v

		if i >= window {
			sum -= values[i-window]
		}

		span := min(i+1, window)
		smoothed[i] = mathutil.Round3(sum / float64(span))
	}

	return smoothed
}
