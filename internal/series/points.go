package series

import "lifelog/pkg/mathutil"

// Point is one charted value on a calendar date.
type Point struct {
	Date  string
	Value float64
}

// BuildPoints maps each date through valueFn in order.
func BuildPoints(dates []string, valueFn func(dateKey string) float64) []Point {
	points := make([]Point, len(dates))

	for i, d := range dates {
		points[i] = Point{Date: d, Value: valueFn(d)}
	}

	return points
}

// Downsample reduces a point series to at most maxPoints by fixed-stride
// decimation starting at index 0. It is a lossy display reduction, never an
// aggregate computation: no averaging across the stride.
func Downsample(points []Point, maxPoints int) []Point {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}

	step := mathutil.CeilDiv(len(points), maxPoints)
	sampled := make([]Point, 0, mathutil.CeilDiv(len(points), step))

	for i := 0; i < len(points); i += step {
		sampled = append(sampled, points[i])
	}

	return sampled
}

// Values extracts the value column of a point series.
func Values(points []Point) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	return values
}

// Labels extracts the date column of a point series.
func Labels(points []Point) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Date
	}

	return labels
}
