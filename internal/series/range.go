// Package series turns the aggregate index into chartable point series:
// range resolution, gap padding, and display downsampling.
package series

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// Display budgets for downsampling.
const (
	// MaxPointsWindow is the point budget for fixed windows.
	MaxPointsWindow = 90
	// MaxPointsAll is the point budget for the unbounded range.
	MaxPointsAll = 180
)

// ErrUnknownRange indicates an unrecognized range key string.
var ErrUnknownRange = errors.New("series: unknown range key")

// RangeKey is a closed set of supported chart ranges.
type RangeKey int

const (
	// Range7d is the trailing 7 calendar days.
	Range7d RangeKey = iota
	// Range30d is the trailing 30 calendar days.
	Range30d
	// Range90d is the trailing 90 calendar days.
	Range90d
	// Range365d is the trailing 365 calendar days.
	Range365d
	// RangeAll covers every date present in the log.
	RangeAll
)

// ParseRangeKey maps a CLI/config string to a RangeKey.
func ParseRangeKey(s string) (RangeKey, error) {
	switch s {
	case "7d":
		return Range7d, nil
	case "30d":
		return Range30d, nil
	case "90d":
		return Range90d, nil
	case "365d":
		return Range365d, nil
	case "all":
		return RangeAll, nil
	default:
		return Range7d, ErrUnknownRange
	}
}

// String returns the canonical spelling of the range key.
func (k RangeKey) String() string {
	switch k {
	case Range7d:
		return "7d"
	case Range30d:
		return "30d"
	case Range90d:
		return "90d"
	case Range365d:
		return "365d"
	case RangeAll:
		return "all"
	default:
		return "7d"
	}
}

// WindowDays returns the fixed window length in days, or 0 for RangeAll.
func (k RangeKey) WindowDays() int {
	switch k {
	case Range7d:
		return 7
	case Range30d:
		return 30
	case Range90d:
		return 90
	case Range365d:
		return 365
	case RangeAll:
		return 0
	default:
		return 7
	}
}

// MaxPoints returns the display point budget for the range.
func (k RangeKey) MaxPoints() int {
	if k == RangeAll {
		return MaxPointsAll
	}

	return MaxPointsWindow
}

// CalendarDates resolves the contiguous calendar dates in scope for a range,
// including dates with no data. Fixed windows produce exactly N consecutive
// dates ending at today. RangeAll returns every existing date not after
// today; dates after today are excluded everywhere as a clock-skew guard.
func CalendarDates(key RangeKey, today time.Time, existing []string) []string {
	todayKey := today.Format(dateLayout)

	if key == RangeAll {
		return notAfter(existing, todayKey)
	}

	window := key.WindowDays()
	dates := make([]string, 0, window)

	for offset := window - 1; offset >= 0; offset-- {
		dates = append(dates, today.AddDate(0, 0, -offset).Format(dateLayout))
	}

	return dates
}

// HeatmapDates is CalendarDates with the heatmap fallback: when RangeAll
// resolves to nothing, the result is [today] so the display is never
// literally empty.
func HeatmapDates(key RangeKey, today time.Time, existing []string) []string {
	dates := CalendarDates(key, today, existing)
	if len(dates) == 0 {
		return []string{today.Format(dateLayout)}
	}

	return dates
}

// ExistingDates filters the existing dates to those inside the range window.
// Unlike CalendarDates it does not pad gaps: point-series charts only plot
// dates that have data, while heatmaps render a full padded window. The two
// behaviors are intentionally distinct.
func ExistingDates(key RangeKey, today time.Time, existing []string) []string {
	todayKey := today.Format(dateLayout)

	if key == RangeAll {
		return notAfter(existing, todayKey)
	}

	fromKey := today.AddDate(0, 0, -(key.WindowDays() - 1)).Format(dateLayout)
	dates := make([]string, 0, len(existing))

	for _, d := range existing {
		if d >= fromKey && d <= todayKey {
			dates = append(dates, d)
		}
	}

	return dates
}

// notAfter keeps dates <= cutoff. Input is sorted; output preserves order.
func notAfter(dates []string, cutoff string) []string {
	kept := make([]string, 0, len(dates))

	for _, d := range dates {
		if d <= cutoff {
			kept = append(kept, d)
		}
	}

	return kept
}
