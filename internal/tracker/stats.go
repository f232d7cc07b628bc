package tracker

import (
	"time"

	"lifelog/internal/aggregate"
	"lifelog/internal/model"
	"lifelog/internal/series"
)

// DomainStats summarizes one domain's activity over a range.
type DomainStats struct {
	Domain  *model.Domain
	Entries int
	Sum     int
	Average float64
	Worst   int

	// LastLogged is the most recent entry timestamp in the range, zero
	// when the domain has no entries.
	LastLogged time.Time
}

// Stats computes the per-domain summary for the range window. Domains with
// no entries in range still appear with zero values so the table is complete.
func (t *Tracker) Stats(key series.RangeKey, today time.Time) []DomainStats {
	dates := series.ExistingDates(key, today, t.store.Dates())
	idx := aggregate.Build(t.store)

	stats := make([]DomainStats, 0, len(t.domains))

	for i := range t.domains {
		domain := &t.domains[i]
		stats = append(stats, t.domainStats(domain, dates, idx))
	}

	return stats
}

func (t *Tracker) domainStats(domain *model.Domain, dates []string, idx aggregate.Index) DomainStats {
	ds := DomainStats{Domain: domain}
	worstSet := false

	for _, dateKey := range dates {
		bucket, ok := idx[dateKey][domain.ID]
		if !ok {
			continue
		}

		ds.Entries += bucket.Count
		ds.Sum += bucket.Sum

		if !worstSet || bucket.Worst < ds.Worst {
			ds.Worst = bucket.Worst
			worstSet = true
		}

		for _, e := range t.store.Query(dateKey, domain.ID) {
			logged := time.UnixMilli(e.Timestamp)
			if logged.After(ds.LastLogged) {
				ds.LastLogged = logged
			}
		}
	}

	if ds.Entries > 0 {
		ds.Average = float64(ds.Sum) / float64(ds.Entries)
	}

	return ds
}
