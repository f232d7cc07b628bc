package tracker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifelog/internal/aggregate"
	"lifelog/internal/config"
	"lifelog/internal/model"
	"lifelog/internal/persist"
	"lifelog/internal/series"
)

var (
	testMorning = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	testEvening = time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	testToday   = time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
)

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		DataDir:      dataDir,
		DefaultRange: "7d",
		Theme:        "dark",
		Domains: model.Domains{
			{
				ID:             "dom-health",
				Name:           "Health",
				RawAggregation: "sum",
				States: []model.State{
					{ID: "st-good", Name: "Good", Score: 1},
					{ID: "st-bad", Name: "Bad", Score: -1},
				},
			},
		},
	}
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	tr, err := New(testConfig(t.TempDir()), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)

	return tr
}

func TestAddLog_RoundTrip(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	entry, dateKey, err := tr.AddLog("Health", "Good", "morning walk", testMorning)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", dateKey)

	entries := tr.Store().Query(dateKey, "dom-health")
	require.Len(t, entries, 1)
	assert.Equal(t, "st-good", entries[0].StateID)
	assert.Equal(t, "morning walk", entries[0].Note)
	assert.Equal(t, 1, entries[0].Score)
	assert.Equal(t, entry, entries[0])
}

func TestAddLog_ResolvesByIDOrName(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("dom-health", "st-bad", "", testMorning)
	require.NoError(t, err)

	_, _, err = tr.AddLog("Health", "Bad", "", testEvening)
	require.NoError(t, err)

	assert.Len(t, tr.Store().Query("2024-01-01", "dom-health"), 2)
}

func TestAddLog_UnknownDomain(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Sleep", "Good", "", testMorning)

	require.ErrorIs(t, err, model.ErrDomainNotFound)
	assert.True(t, tr.Store().Empty(), "no partial write on failure")
}

func TestAddLog_UnknownState(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Meh", "", testMorning)

	require.ErrorIs(t, err, model.ErrStateNotFound)
	assert.True(t, tr.Store().Empty())
}

func TestAddLog_ScoreIsSnapshot(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)

	// Edit the state's score after logging. History must not change.
	domain, _ := tr.Domains().ByRef("Health")
	state, _ := domain.StateByRef("Good")
	state.Score = -2

	idx := aggregate.Build(tr.Store())
	assert.InDelta(t, 1, aggregate.Resolve(idx, "2024-01-01", "dom-health", model.AggSum), 0)
}

func TestHealthDayScenario_AllPolicies(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Bad", "", testEvening)
	require.NoError(t, err)

	idx := aggregate.Build(tr.Store())

	assert.InDelta(t, 0, aggregate.Resolve(idx, "2024-01-01", "dom-health", model.AggSum), 0)
	assert.InDelta(t, -1, aggregate.Resolve(idx, "2024-01-01", "dom-health", model.AggWorst), 0)
	assert.InDelta(t, 0.0, aggregate.Resolve(idx, "2024-01-01", "dom-health", model.AggAverage), 0)
}

func TestDelete_Precedence(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	for range 2 {
		_, _, err := tr.AddLog("Health", "Good", "", testMorning)
		require.NoError(t, err)
	}

	_, _, err := tr.AddLog("Health", "Bad", "", testEvening)
	require.NoError(t, err)

	// Index takes precedence over state.
	require.NoError(t, tr.Delete("2024-01-01", "Health", "Good", 2))
	assert.Len(t, tr.Store().Query("2024-01-01", "dom-health"), 2)

	// State filter deletes all matching entries.
	require.NoError(t, tr.Delete("2024-01-01", "Health", "Good", -1))
	assert.Empty(t, tr.Store().Query("2024-01-01", "dom-health"))
}

func TestDelete_WholeBucketAndPrune(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)

	require.NoError(t, tr.Delete("2024-01-01", "Health", "", -1))

	assert.True(t, tr.Store().Empty(), "date bucket pruned once empty")
}

func TestDelete_MissingBucketIsNoop(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	assert.NoError(t, tr.Delete("2030-01-01", "Health", "", -1))
}

func TestTrendSeries_ExistingDatesOnly(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	// Two entries with a five-day gap inside the 7d window.
	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Bad", "", testMorning.AddDate(0, 0, 5))
	require.NoError(t, err)

	domain, _ := tr.Domains().ByRef("Health")

	labels, values, err := tr.TrendSeries(domain, series.Range7d, false, testToday)
	require.NoError(t, err)

	// Gaps are not padded for point series.
	assert.Equal(t, []string{"2024-01-01", "2024-01-06"}, labels)
	assert.Equal(t, []float64{1, -1}, values)
}

func TestTrendSeries_NoDataError(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	domain, _ := tr.Domains().ByRef("Health")

	_, _, err := tr.TrendSeries(domain, series.Range7d, false, testToday)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestTrendSeries_Smoothed(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	for day := range 3 {
		_, _, err := tr.AddLog("Health", "Good", "", testMorning.AddDate(0, 0, day))
		require.NoError(t, err)
	}

	domain, _ := tr.Domains().ByRef("Health")

	_, values, err := tr.TrendSeries(domain, series.Range7d, true, testToday)
	require.NoError(t, err)

	// Constant series stays constant under the moving average.
	assert.Equal(t, []float64{1, 1, 1}, values)
}

func TestHeatmapSeries_PadsGapsWithZero(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)

	domain, _ := tr.Domains().ByRef("Health")

	dates, values := tr.HeatmapSeries(domain, series.Range7d, testToday)

	require.Len(t, values, len(dates))
	require.Len(t, dates, 7)
	assert.InDelta(t, 1, values[0], 0) // 2024-01-01.
	assert.InDelta(t, 0, values[1], 0) // Padded gap.
}

func TestHeatmapSeries_NeverEmpty(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	domain, _ := tr.Domains().ByRef("Health")

	dates, values := tr.HeatmapSeries(domain, series.RangeAll, testToday)

	assert.Equal(t, []string{"2024-01-07"}, dates)
	assert.Equal(t, []float64{0}, values)
}

func TestStateBreakdown_Count(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Good", "", testEvening)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Bad", "", testEvening)
	require.NoError(t, err)

	dates, byState, err := tr.StateBreakdown(tr.domainByName(t, "Health"), series.Range7d, aggregate.MetricCount, testToday)
	require.NoError(t, err)

	require.Len(t, dates, 7)
	assert.InDelta(t, 2, byState["st-good"][0], 0)
	assert.InDelta(t, 1, byState["st-bad"][0], 0)
	assert.InDelta(t, 0, byState["st-good"][3], 0)
}

func TestStats_Summary(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	_, _, err := tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Bad", "", testEvening)
	require.NoError(t, err)

	stats := tr.Stats(series.Range7d, testToday)

	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Entries)
	assert.Equal(t, 0, stats[0].Sum)
	assert.InDelta(t, 0.0, stats[0].Average, 0)
	assert.Equal(t, -1, stats[0].Worst)
	assert.Equal(t, testEvening.UnixMilli(), stats[0].LastLogged.UnixMilli())
}

func TestPersistence_WriteThroughRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := testConfig(dir)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tr, err := New(cfg, logger)
	require.NoError(t, err)

	_, _, err = tr.AddLog("Health", "Good", "persisted", testMorning)
	require.NoError(t, err)

	// A fresh tracker over the same directory sees the entry.
	reloaded, err := New(testConfig(dir), logger)
	require.NoError(t, err)

	entries := reloaded.Store().Query("2024-01-01", "dom-health")
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted", entries[0].Note)
}

func TestNew_GeneratedIDsStableAcrossRuns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	// Config without ids: first run generates and persists them.
	bare := func() *config.Config {
		return &config.Config{
			DataDir: dir,
			Domains: model.Domains{
				{Name: "Mood", States: []model.State{{Name: "Happy", Score: 1}}},
			},
		}
	}

	first, err := New(bare(), logger)
	require.NoError(t, err)

	firstID := first.Domains()[0].ID
	firstStateID := first.Domains()[0].States[0].ID
	require.NotEmpty(t, firstID)

	second, err := New(bare(), logger)
	require.NoError(t, err)

	assert.Equal(t, firstID, second.Domains()[0].ID)
	assert.Equal(t, firstStateID, second.Domains()[0].States[0].ID)
}

func TestNew_NoConfiguredDomainsAdoptsPersisted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tr, err := New(testConfig(dir), logger)
	require.NoError(t, err)
	_, _, err = tr.AddLog("Health", "Good", "", testMorning)
	require.NoError(t, err)

	// A config file with no domains still runs off the snapshot.
	adopted, err := New(&config.Config{DataDir: dir}, logger)
	require.NoError(t, err)

	domain, ok := adopted.Domains().ByRef("Health")
	require.True(t, ok)
	assert.Equal(t, "dom-health", domain.ID)
}

func TestExportCSV_UnknownDomain(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	var buf strings.Builder
	err := tr.ExportCSV("Sleep", &buf)

	assert.ErrorIs(t, err, model.ErrDomainNotFound)
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)

	name, err := tr.ExportFilename("Health", testToday)
	require.NoError(t, err)

	assert.Equal(t, "health_2024-01-07.csv", name)
}

// domainByName is a test helper resolving a domain or failing the test.
func (t *Tracker) domainByName(tb *testing.T, name string) *model.Domain {
	tb.Helper()

	domain, ok := t.domains.ByRef(name)
	require.True(tb, ok)

	return domain
}
