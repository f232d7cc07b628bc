package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDomainHealth = "Health"
	testStateGood    = "Good"
	testStateBad     = "Bad"
)

func testDomains() Domains {
	return Domains{
		{
			ID:   "dom-health",
			Name: testDomainHealth,
			States: []State{
				{ID: "st-good", Name: testStateGood, Score: 1},
				{ID: "st-bad", Name: testStateBad, Score: -1},
			},
			Aggregation: AggSum,
		},
	}
}

func TestParseAggregationType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, AggSum, ParseAggregationType("sum"))
	assert.Equal(t, AggAverage, ParseAggregationType("average"))
	assert.Equal(t, AggAverage, ParseAggregationType("avg"))
	assert.Equal(t, AggWorst, ParseAggregationType("worst"))

	// Missing or unknown values repair to sum.
	assert.Equal(t, AggSum, ParseAggregationType(""))
	assert.Equal(t, AggSum, ParseAggregationType("median"))
}

func TestAggregationType_String_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, agg := range []AggregationType{AggSum, AggAverage, AggWorst} {
		assert.Equal(t, agg, ParseAggregationType(agg.String()))
	}
}

func TestDomains_ByRef(t *testing.T) {
	t.Parallel()

	ds := testDomains()

	byID, ok := ds.ByRef("dom-health")
	require.True(t, ok)
	assert.Equal(t, testDomainHealth, byID.Name)

	byName, ok := ds.ByRef(testDomainHealth)
	require.True(t, ok)
	assert.Equal(t, "dom-health", byName.ID)

	_, ok = ds.ByRef("Sleep")
	assert.False(t, ok)
}

func TestDomain_StateByRef(t *testing.T) {
	t.Parallel()

	ds := testDomains()

	s, ok := ds[0].StateByRef("st-bad")
	require.True(t, ok)
	assert.Equal(t, -1, s.Score)

	s, ok = ds[0].StateByRef(testStateGood)
	require.True(t, ok)
	assert.Equal(t, "st-good", s.ID)

	_, ok = ds[0].StateByRef("Meh")
	assert.False(t, ok)
}

func TestNormalize_GeneratesMissingIDs(t *testing.T) {
	t.Parallel()

	ds := Domains{{Name: "Work", States: []State{{Name: "Productive", Score: 2}}}}

	changed := Normalize(ds)

	require.True(t, changed)
	assert.NotEmpty(t, ds[0].ID)
	assert.NotEmpty(t, ds[0].States[0].ID)
	assert.Equal(t, AggSum, ds[0].Aggregation)
	assert.Equal(t, "sum", ds[0].RawAggregation)
}

func TestNormalize_MigratesLegacyLabel(t *testing.T) {
	t.Parallel()

	ds := Domains{{Name: "Mood", States: []State{{Label: "Happy", Score: 1}}}}

	changed := Normalize(ds)

	require.True(t, changed)
	assert.Equal(t, "Happy", ds[0].States[0].Name)
	assert.Empty(t, ds[0].States[0].Label)
	assert.NotEmpty(t, ds[0].States[0].ID)

	// Running again is a no-op: the migration is idempotent.
	assert.False(t, Normalize(ds))
}

func TestNormalize_ClampsScores(t *testing.T) {
	t.Parallel()

	ds := Domains{{Name: "Mood", States: []State{{Name: "Ecstatic", Score: 9}}}}

	Normalize(ds)

	assert.Equal(t, MaxScore, ds[0].States[0].Score)
}

func TestNormalize_UnchangedConfigReportsFalse(t *testing.T) {
	t.Parallel()

	ds := testDomains()
	ds[0].RawAggregation = "sum"

	assert.False(t, Normalize(ds))
}

func TestMergeIdentity_KeepsPersistedIDs(t *testing.T) {
	t.Parallel()

	persisted := testDomains()
	configured := Domains{
		{
			Name: testDomainHealth,
			States: []State{
				{Name: testStateGood, Score: 1},
				{Name: "Terrible", Score: -2},
			},
		},
	}

	MergeIdentity(configured, persisted)
	Normalize(configured)

	assert.Equal(t, "dom-health", configured[0].ID)
	assert.Equal(t, "st-good", configured[0].States[0].ID)

	// The new state gets a fresh id.
	assert.NotEmpty(t, configured[0].States[1].ID)
	assert.NotEqual(t, "st-bad", configured[0].States[1].ID)
}

func TestMergeIdentity_MatchesLegacyLabel(t *testing.T) {
	t.Parallel()

	persisted := Domains{{ID: "dom-m", Name: "Mood", States: []State{{ID: "st-h", Name: "Happy", Score: 1}}}}
	configured := Domains{{Name: "Mood", States: []State{{Label: "Happy", Score: 1}}}}

	MergeIdentity(configured, persisted)
	Normalize(configured)

	assert.Equal(t, "st-h", configured[0].States[0].ID)
	assert.Equal(t, "Happy", configured[0].States[0].Name)
}
