// Package logstore implements the append-only, date-bucketed event log that
// every derived index is rebuilt from. Entries are bucketed by the local
// calendar date of their timestamp; empty buckets are pruned on deletion so
// an empty container is never persisted.
package logstore

import (
	"sort"
	"time"
)

// dateLayout is the dateKey format. Lexicographic order equals calendar order.
const dateLayout = "2006-01-02"

const secondsPerMinute = 60

// Entry is a single logged state event. The score is captured from the state
// at append time and never re-derived, so later edits to a state's score do
// not rewrite history.
type Entry struct {
	StateID string `json:"state"`
	Score   int    `json:"score"`
	// Timestamp is epoch milliseconds.
	Timestamp int64  `json:"ts"`
	Note      string `json:"note,omitempty"`
	// UTCOffsetMinutes records the local offset at log time, so exports can
	// reproduce the wall clock the user saw.
	UTCOffsetMinutes *int `json:"utcOffset,omitempty"`
}

// Time returns the entry timestamp in the zone it was logged in, falling
// back to the process-local zone when no offset was recorded.
func (e Entry) Time() time.Time {
	ts := time.UnixMilli(e.Timestamp)
	if e.UTCOffsetMinutes == nil {
		return ts.Local()
	}

	zone := time.FixedZone("local", *e.UTCOffsetMinutes*secondsPerMinute)

	return ts.In(zone)
}

// DayMap is the persisted shape of the log: dateKey -> domainID -> entries.
// Entry order within a bucket is insertion order, not guaranteed sorted.
type DayMap map[string]map[string][]Entry

// DateKey formats the calendar date of t, in t's own location, as a bucket key.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Store is the in-memory event log.
type Store struct {
	days DayMap
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{days: DayMap{}}
}

// FromData wraps loaded data in a store, pruning any empty buckets a legacy
// snapshot may carry.
func FromData(data DayMap) *Store {
	if data == nil {
		data = DayMap{}
	}

	for dateKey, domains := range data {
		for domainID, entries := range domains {
			if len(entries) == 0 {
				delete(domains, domainID)
			}
		}

		if len(domains) == 0 {
			delete(data, dateKey)
		}
	}

	return &Store{days: data}
}

// Data exposes the underlying day map for persistence. Callers must not
// mutate it.
func (s *Store) Data() DayMap {
	return s.days
}

// Append inserts an entry into the bucket for the local calendar date of at
// and returns the dateKey it landed in.
func (s *Store) Append(at time.Time, domainID string, e Entry) string {
	dateKey := DateKey(at)

	domains, ok := s.days[dateKey]
	if !ok {
		domains = map[string][]Entry{}
		s.days[dateKey] = domains
	}

	domains[domainID] = append(domains[domainID], e)

	return dateKey
}

// Query returns the entries for a (date, domain) bucket. A missing bucket is
// an empty result, not an error.
func (s *Store) Query(dateKey, domainID string) []Entry {
	return s.days[dateKey][domainID]
}

// DeleteEntry removes the entry at the given position within a bucket.
// Out-of-range indexes and missing buckets are silent no-ops.
func (s *Store) DeleteEntry(dateKey, domainID string, index int) {
	entries := s.days[dateKey][domainID]
	if index < 0 || index >= len(entries) {
		return
	}

	entries = append(entries[:index], entries[index+1:]...)
	s.days[dateKey][domainID] = entries
	s.prune(dateKey, domainID)
}

// DeleteState removes every entry in a bucket matching the state id.
func (s *Store) DeleteState(dateKey, domainID, stateID string) {
	entries, ok := s.days[dateKey][domainID]
	if !ok {
		return
	}

	kept := entries[:0]

	for _, e := range entries {
		if e.StateID != stateID {
			kept = append(kept, e)
		}
	}

	s.days[dateKey][domainID] = kept
	s.prune(dateKey, domainID)
}

// DeleteBucket removes the entire domain bucket for a date.
func (s *Store) DeleteBucket(dateKey, domainID string) {
	domains, ok := s.days[dateKey]
	if !ok {
		return
	}

	delete(domains, domainID)

	if len(domains) == 0 {
		delete(s.days, dateKey)
	}
}

// DeleteDate removes the entire date bucket unconditionally.
func (s *Store) DeleteDate(dateKey string) {
	delete(s.days, dateKey)
}

// Dates returns every distinct dateKey present, sorted ascending.
func (s *Store) Dates() []string {
	dates := make([]string, 0, len(s.days))
	for dateKey := range s.days {
		dates = append(dates, dateKey)
	}

	sort.Strings(dates)

	return dates
}

// Range calls fn for every (date, domain) bucket. Iteration order is
// unspecified.
func (s *Store) Range(fn func(dateKey, domainID string, entries []Entry)) {
	for dateKey, domains := range s.days {
		for domainID, entries := range domains {
			fn(dateKey, domainID, entries)
		}
	}
}

// TotalEntries counts all entries across all buckets.
func (s *Store) TotalEntries() int {
	total := 0

	s.Range(func(_, _ string, entries []Entry) {
		total += len(entries)
	})

	return total
}

// Empty reports whether the store holds no entries.
func (s *Store) Empty() bool {
	return len(s.days) == 0
}

// prune drops an emptied domain bucket and, if that was the last domain,
// the date bucket as well.
func (s *Store) prune(dateKey, domainID string) {
	domains, ok := s.days[dateKey]
	if !ok {
		return
	}

	if len(domains[domainID]) == 0 {
		delete(domains, domainID)
	}

	if len(domains) == 0 {
		delete(s.days, dateKey)
	}
}
