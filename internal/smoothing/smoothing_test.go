package smoothing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelog/internal/series"
)

func TestWindow_PerRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, Window(series.Range7d))
	assert.Equal(t, 3, Window(series.Range30d))
	assert.Equal(t, 5, Window(series.Range90d))
	assert.Equal(t, 7, Window(series.Range365d))
	assert.Equal(t, 10, Window(series.RangeAll))
}

func TestMovingAverage_WindowOneIsIdentity(t *testing.T) {
	t.Parallel()

	values := []float64{3, 1, 4, 1, 5}

	assert.Equal(t, values, MovingAverage(values, 1))
	assert.Equal(t, values, MovingAverage(values, 0))
}

func TestMovingAverage_SingleValueUnchanged(t *testing.T) {
	t.Parallel()

	for _, window := range []int{1, 2, 5, 10} {
		out := MovingAverage([]float64{2.5}, window)

		require.Len(t, out, 1)
		assert.InDelta(t, 2.5, out[0], 0)
	}
}

func TestMovingAverage_CausalShrinkingWindow(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4}

	out := MovingAverage(values, 3)

	require.Len(t, out, 4)
	assert.InDelta(t, 1.0, out[0], 0)   // window [1].
	assert.InDelta(t, 1.5, out[1], 0)   // window [1,2].
	assert.InDelta(t, 2.0, out[2], 0)   // window [1,2,3].
	assert.InDelta(t, 3.0, out[3], 0)   // window [2,3,4].
}

func TestMovingAverage_RoundsToThreeDecimals(t *testing.T) {
	t.Parallel()

	out := MovingAverage([]float64{1, 0, 0}, 3)

	assert.InDelta(t, 0.5, out[1], 0)
	assert.InDelta(t, 0.333, out[2], 0)
}

func TestMovingAverage_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, MovingAverage(nil, 5))
	assert.Empty(t, MovingAverage([]float64{}, 5))
}
