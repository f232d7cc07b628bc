// Package aggregate derives per-day summaries from the event log. Indexes
// are ephemeral: rebuilt on every query in a single pass over the log, never
// cached across mutations.
package aggregate

import (
	"lifelog/internal/logstore"
	"lifelog/internal/model"
)

// Bucket holds the per-(date, domain) statistics every aggregation policy is
// answered from.
type Bucket struct {
	Sum   int
	Count int
	Worst int
}

// Index maps dateKey -> domainID -> bucket. Domains with no entries on a
// date are absent; callers treat absence as zero.
type Index map[string]map[string]Bucket

// Build scans the store once and computes sum, count, and minimum score for
// every (date, domain) bucket present.
func Build(store *logstore.Store) Index {
	idx := Index{}

	store.Range(func(dateKey, domainID string, entries []logstore.Entry) {
		// Empty buckets are pruned by the store; guard anyway so worst
		// never reads from an empty slice.
		if len(entries) == 0 {
			return
		}

		b := Bucket{Worst: entries[0].Score}

		for _, e := range entries {
			b.Sum += e.Score
			b.Count++

			if e.Score < b.Worst {
				b.Worst = e.Score
			}
		}

		domains, ok := idx[dateKey]
		if !ok {
			domains = map[string]Bucket{}
			idx[dateKey] = domains
		}

		domains[domainID] = b
	})

	return idx
}

// Resolve reduces a bucket under the given aggregation policy. A missing
// (date, domain) pair resolves to 0.
func Resolve(idx Index, dateKey, domainID string, policy model.AggregationType) float64 {
	b, ok := idx[dateKey][domainID]
	if !ok {
		return 0
	}

	switch policy {
	case model.AggAverage:
		if b.Count == 0 {
			return 0
		}

		return float64(b.Sum) / float64(b.Count)
	case model.AggWorst:
		return float64(b.Worst)
	case model.AggSum:
		return float64(b.Sum)
	default:
		return float64(b.Sum)
	}
}

// StateMetric selects what a per-state index measures.
type StateMetric int

const (
	// MetricCount counts occurrences per state.
	MetricCount StateMetric = iota
	// MetricScore sums captured scores per state.
	MetricScore
)

// StateIndex maps dateKey -> stateID -> metric value for a single domain.
type StateIndex map[string]map[string]int

// BuildStateIndex computes the per-state metric index for one domain in a
// single pass over the log.
func BuildStateIndex(store *logstore.Store, domainID string, metric StateMetric) StateIndex {
	idx := StateIndex{}

	store.Range(func(dateKey, id string, entries []logstore.Entry) {
		if id != domainID {
			return
		}

		states, ok := idx[dateKey]
		if !ok {
			states = map[string]int{}
			idx[dateKey] = states
		}

		for _, e := range entries {
			if metric == MetricScore {
				states[e.StateID] += e.Score
			} else {
				states[e.StateID]++
			}
		}
	})

	return idx
}
