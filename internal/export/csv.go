// Package export renders a domain's full log history as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lifelog/internal/logstore"
	"lifelog/internal/model"
)

// unknownStateName is emitted when an entry references a state id that no
// longer exists in the domain configuration.
const unknownStateName = "unknown"

const timeLayout = "15:04"

var csvHeader = []string{"date", "time", "state_name", "score", "note"}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives the deterministic export file name for a domain: the
// lowercased name with non-alphanumeric runs collapsed to single
// underscores, plus today's date key.
func Filename(domainName string, today time.Time) string {
	slug := strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(domainName), "_"), "_")
	if slug == "" {
		slug = "domain"
	}

	return fmt.Sprintf("%s_%s.csv", slug, logstore.DateKey(today))
}

// WriteCSV emits the header and one row per log entry for the domain, dates
// ascending, times formatted as local HH:MM. Quoting (fields containing
// commas, quotes, or newlines) follows RFC 4180 via encoding/csv.
func WriteCSV(w io.Writer, domain *model.Domain, store *logstore.Store) error {
	writer := csv.NewWriter(w)

	err := writer.Write(csvHeader)
	if err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, dateKey := range store.Dates() {
		for _, e := range store.Query(dateKey, domain.ID) {
			name := unknownStateName
			if s, ok := domain.StateByID(e.StateID); ok {
				name = s.Name
			}

			row := []string{
				dateKey,
				e.Time().Format(timeLayout),
				name,
				strconv.Itoa(e.Score),
				e.Note,
			}

			err = writer.Write(row)
			if err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
