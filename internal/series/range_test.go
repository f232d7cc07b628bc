package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestParseRangeKey(t *testing.T) {
	t.Parallel()

	for _, spelling := range []string{"7d", "30d", "90d", "365d", "all"} {
		key, err := ParseRangeKey(spelling)
		require.NoError(t, err)
		assert.Equal(t, spelling, key.String())
	}

	_, err := ParseRangeKey("fortnight")
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestCalendarDates_FixedWindow(t *testing.T) {
	t.Parallel()

	dates := CalendarDates(Range7d, testToday, nil)

	require.Len(t, dates, 7)
	assert.Equal(t, "2024-06-09", dates[0])
	assert.Equal(t, "2024-06-15", dates[6])

	// Consecutive regardless of data presence.
	for i := 1; i < len(dates); i++ {
		assert.Less(t, dates[i-1], dates[i])
	}
}

func TestCalendarDates_CrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	dates := CalendarDates(Range7d, today, nil)

	assert.Equal(t, "2024-02-25", dates[0])
	assert.Equal(t, "2024-03-02", dates[6])
}

func TestCalendarDates_AllUsesExistingDates(t *testing.T) {
	t.Parallel()

	existing := []string{"2024-01-05", "2024-03-20", "2024-06-01"}

	assert.Equal(t, existing, CalendarDates(RangeAll, testToday, existing))
	assert.Empty(t, CalendarDates(RangeAll, testToday, nil))
}

func TestCalendarDates_AllExcludesFutureDates(t *testing.T) {
	t.Parallel()

	// Clock-skew guard: a logged date after today never shows up.
	existing := []string{"2024-06-01", "2024-07-01"}

	assert.Equal(t, []string{"2024-06-01"}, CalendarDates(RangeAll, testToday, existing))
}

func TestHeatmapDates_FallbackToToday(t *testing.T) {
	t.Parallel()

	dates := HeatmapDates(RangeAll, testToday, nil)

	assert.Equal(t, []string{"2024-06-15"}, dates)
}

func TestExistingDates_FiltersToWindowWithoutPadding(t *testing.T) {
	t.Parallel()

	existing := []string{"2024-05-01", "2024-06-10", "2024-06-14", "2024-07-01"}

	dates := ExistingDates(Range7d, testToday, existing)

	// Only dates with data inside the window; no gap padding, no future dates.
	assert.Equal(t, []string{"2024-06-10", "2024-06-14"}, dates)
}

func TestExistingDates_All(t *testing.T) {
	t.Parallel()

	existing := []string{"2023-01-01", "2024-06-14"}

	assert.Equal(t, existing, ExistingDates(RangeAll, testToday, existing))
}

func TestWindowDaysAndMaxPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, Range7d.WindowDays())
	assert.Equal(t, 30, Range30d.WindowDays())
	assert.Equal(t, 90, Range90d.WindowDays())
	assert.Equal(t, 365, Range365d.WindowDays())
	assert.Equal(t, 0, RangeAll.WindowDays())

	assert.Equal(t, MaxPointsWindow, Range365d.MaxPoints())
	assert.Equal(t, MaxPointsAll, RangeAll.MaxPoints())
}
