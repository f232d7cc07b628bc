// Package tracker wires the lifelog engines together behind a single root
// controller. The tracker owns the application state (domain configuration
// plus the event log store) and is passed explicitly to every command; there
// are no package-level singletons.
package tracker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"lifelog/internal/aggregate"
	"lifelog/internal/config"
	"lifelog/internal/export"
	"lifelog/internal/logstore"
	"lifelog/internal/model"
	"lifelog/internal/persist"
	"lifelog/internal/series"
	"lifelog/internal/smoothing"
)

// ErrNoData indicates an empty view for the requested range. It is an
// expected state surfaced as a notice, not a fault.
var ErrNoData = errors.New("tracker: no data for requested range")

const secondsPerMinute = 60

// Tracker is the root controller owning all mutable application state.
type Tracker struct {
	domains   model.Domains
	store     *logstore.Store
	persister *persist.Persister
	logger    *slog.Logger
}

// New loads the snapshot for the configured data directory and merges the
// configured domains with persisted identity.
func New(cfg *config.Config, logger *slog.Logger) (*Tracker, error) {
	var codec persist.Codec = persist.NewJSONCodec()
	if cfg.Compress {
		codec = persist.NewLZ4Codec()
	}

	persister := persist.NewPersister(cfg.DataDir, config.DefaultSnapshotName, codec)

	return NewWithPersister(cfg, persister, logger)
}

// NewWithPersister is New with an injected persister, for tests.
func NewWithPersister(cfg *config.Config, persister *persist.Persister, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	snapshot, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	logger.Debug("snapshot loaded", "migration", snapshot.Migration)

	domains := cfg.Domains
	if len(domains) == 0 {
		// No configured domains: run off the persisted set.
		domains = snapshot.Settings.Domains
	} else {
		model.MergeIdentity(domains, snapshot.Settings.Domains)
	}

	repaired := model.Normalize(domains)

	t := &Tracker{
		domains:   domains,
		store:     logstore.FromData(snapshot.Data),
		persister: persister,
		logger:    logger,
	}

	// Write repairs and migrations back so they happen exactly once.
	if repaired || snapshot.Migration != persist.MigrationEnvelope {
		t.save()
	}

	return t, nil
}

// Domains returns the active domain configuration.
func (t *Tracker) Domains() model.Domains {
	return t.domains
}

// Store returns the event log store.
func (t *Tracker) Store() *logstore.Store {
	return t.store
}

// save persists the current state write-through. The in-memory state is
// authoritative; a failed save is logged and does not affect reads.
func (t *Tracker) save() {
	snapshot := &persist.Snapshot{
		Settings: persist.Settings{Domains: t.domains},
		Data:     t.store.Data(),
	}

	err := t.persister.Save(snapshot)
	if err != nil {
		t.logger.Warn("snapshot save failed", "path", t.persister.Path(), "error", err)
	}
}

// AddLog appends an entry for the referenced domain and state at the given
// instant, capturing the state's current score as an immutable snapshot.
// Returns the entry and the dateKey it was bucketed under.
func (t *Tracker) AddLog(domainRef, stateRef, note string, at time.Time) (logstore.Entry, string, error) {
	domain, ok := t.domains.ByRef(domainRef)
	if !ok {
		return logstore.Entry{}, "", fmt.Errorf("%w: %q", model.ErrDomainNotFound, domainRef)
	}

	state, ok := domain.StateByRef(stateRef)
	if !ok {
		return logstore.Entry{}, "", fmt.Errorf("%w: %q in domain %q", model.ErrStateNotFound, stateRef, domain.Name)
	}

	_, offsetSeconds := at.Zone()
	offsetMinutes := offsetSeconds / secondsPerMinute

	entry := logstore.Entry{
		StateID:          state.ID,
		Score:            state.Score,
		Timestamp:        at.UnixMilli(),
		Note:             note,
		UTCOffsetMinutes: &offsetMinutes,
	}

	dateKey := t.store.Append(at, domain.ID, entry)
	t.save()

	return entry, dateKey, nil
}

// Delete removes entries for a (date, domain) bucket with the standard
// precedence: a non-negative index deletes exactly that entry, else a state
// reference deletes all matching entries, else the whole bucket goes.
// Missing buckets are silent no-ops.
func (t *Tracker) Delete(dateKey, domainRef, stateRef string, index int) error {
	domain, ok := t.domains.ByRef(domainRef)
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrDomainNotFound, domainRef)
	}

	switch {
	case index >= 0:
		t.store.DeleteEntry(dateKey, domain.ID, index)
	case stateRef != "":
		stateID := stateRef
		if state, found := domain.StateByRef(stateRef); found {
			stateID = state.ID
		}

		t.store.DeleteState(dateKey, domain.ID, stateID)
	default:
		t.store.DeleteBucket(dateKey, domain.ID)
	}

	t.save()

	return nil
}

// DeleteDate removes the entire date bucket across all domains.
func (t *Tracker) DeleteDate(dateKey string) {
	t.store.DeleteDate(dateKey)
	t.save()
}

// TrendSeries builds the downsampled (and optionally smoothed) per-day
// aggregate series for one domain. Point series plot only dates that have
// data; gaps are not padded.
func (t *Tracker) TrendSeries(domain *model.Domain, key series.RangeKey, smooth bool, today time.Time) ([]string, []float64, error) {
	dates := series.ExistingDates(key, today, t.store.Dates())
	if len(dates) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoData, key)
	}

	idx := aggregate.Build(t.store)

	points := series.BuildPoints(dates, func(dateKey string) float64 {
		return aggregate.Resolve(idx, dateKey, domain.ID, domain.Aggregation)
	})

	points = series.Downsample(points, key.MaxPoints())
	values := series.Values(points)

	if smooth {
		values = smoothing.MovingAverage(values, smoothing.Window(key))
	}

	return series.Labels(points), values, nil
}

// HeatmapSeries builds the padded per-day aggregate series for one domain.
// Every calendar date in the window gets a value; days with no data are 0.
// The result is never empty.
func (t *Tracker) HeatmapSeries(domain *model.Domain, key series.RangeKey, today time.Time) ([]string, []float64) {
	dates := series.HeatmapDates(key, today, t.store.Dates())
	idx := aggregate.Build(t.store)

	values := make([]float64, len(dates))
	for i, dateKey := range dates {
		values[i] = aggregate.Resolve(idx, dateKey, domain.ID, domain.Aggregation)
	}

	return dates, values
}

// StateBreakdown builds the per-state metric dataset for one domain over the
// padded calendar window, one stacked series per configured state.
func (t *Tracker) StateBreakdown(domain *model.Domain, key series.RangeKey, metric aggregate.StateMetric, today time.Time) ([]string, map[string][]float64, error) {
	dates := series.CalendarDates(key, today, t.store.Dates())
	if len(dates) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoData, key)
	}

	idx := aggregate.BuildStateIndex(t.store, domain.ID, metric)
	byState := make(map[string][]float64, len(domain.States))

	for _, state := range domain.States {
		data := make([]float64, len(dates))
		for i, dateKey := range dates {
			data[i] = float64(idx[dateKey][state.ID])
		}

		byState[state.ID] = data
	}

	return dates, byState, nil
}

// ExportCSV writes the full log history of the referenced domain as CSV.
func (t *Tracker) ExportCSV(domainRef string, w io.Writer) error {
	domain, ok := t.domains.ByRef(domainRef)
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrDomainNotFound, domainRef)
	}

	return export.WriteCSV(w, domain, t.store)
}

// ExportFilename derives the deterministic CSV file name for a domain.
func (t *Tracker) ExportFilename(domainRef string, today time.Time) (string, error) {
	domain, ok := t.domains.ByRef(domainRef)
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrDomainNotFound, domainRef)
	}

	return export.Filename(domain.Name, today), nil
}
