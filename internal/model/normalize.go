package model

import (
	"github.com/google/uuid"

	"lifelog/pkg/mathutil"
)

// Normalize repairs a loaded domain configuration in place and reports
// whether anything changed. Repairs: missing ids are generated, the legacy
// state `label` field is migrated into `name` once, aggregation strings are
// parsed with unknown values falling back to sum, and scores are clamped to
// the valid range. Malformed configuration is never an error.
func Normalize(ds Domains) (changed bool) {
	for i := range ds {
		if normalizeDomain(&ds[i]) {
			changed = true
		}
	}

	return changed
}

func normalizeDomain(d *Domain) (changed bool) {
	if d.ID == "" {
		d.ID = uuid.NewString()
		changed = true
	}

	parsed := ParseAggregationType(d.RawAggregation)
	if d.Aggregation != parsed {
		d.Aggregation = parsed
		changed = true
	}

	canonical := d.Aggregation.String()
	if d.RawAggregation != canonical {
		d.RawAggregation = canonical
		changed = true
	}

	for i := range d.States {
		if normalizeState(&d.States[i]) {
			changed = true
		}
	}

	return changed
}

func normalizeState(s *State) (changed bool) {
	if s.ID == "" {
		s.ID = uuid.NewString()
		changed = true
	}

	// One-shot legacy migration: label becomes name unless name already set.
	if s.Label != "" {
		if s.Name == "" {
			s.Name = s.Label
		}

		s.Label = ""
		changed = true
	}

	clamped := mathutil.Clamp(s.Score, MinScore, MaxScore)
	if clamped != s.Score {
		s.Score = clamped
		changed = true
	}

	return changed
}

// MergeIdentity carries persisted ids onto a freshly configured domain set so
// that ids stay stable across runs. Domains and states are matched by name;
// configured entries with no persisted counterpart keep their own (possibly
// empty) ids for Normalize to fill.
func MergeIdentity(configured Domains, persisted Domains) {
	for i := range configured {
		prev := persisted.byName(configured[i].Name)
		if prev == nil {
			continue
		}

		if configured[i].ID == "" {
			configured[i].ID = prev.ID
		}

		for j := range configured[i].States {
			mergeStateIdentity(&configured[i].States[j], prev)
		}
	}
}

func mergeStateIdentity(s *State, prev *Domain) {
	if s.ID != "" {
		return
	}

	name := s.Name
	if name == "" {
		name = s.Label
	}

	for k := range prev.States {
		if prev.States[k].Name == name {
			s.ID = prev.States[k].ID

			return
		}
	}
}

func (ds Domains) byName(name string) *Domain {
	for i := range ds {
		if ds[i].Name == name {
			return &ds[i]
		}
	}

	return nil
}
