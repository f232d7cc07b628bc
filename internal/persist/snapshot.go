package persist

import (
	"bytes"
	"encoding/json"

	"lifelog/internal/logstore"
	"lifelog/internal/model"
)

// Names of the migration steps applied on load, oldest shape first.
const (
	// MigrationEmpty handled a missing or null snapshot.
	MigrationEmpty = "empty"
	// MigrationBareSettings handled a pre-envelope snapshot that was the
	// settings object itself, with no log data.
	MigrationBareSettings = "bare-settings"
	// MigrationEnvelope handled the current {settings, data} envelope.
	MigrationEnvelope = "envelope"
	// MigrationReset handled an unreadable snapshot by starting fresh.
	// Self-healing is the policy: malformed persisted state is repaired,
	// never surfaced as an error.
	MigrationReset = "reset"
)

// Settings is the persisted configuration payload.
type Settings struct {
	Domains model.Domains `json:"domains"`
}

// Snapshot is the canonical in-memory form every legacy shape normalizes to.
type Snapshot struct {
	Settings Settings        `json:"settings"`
	Data     logstore.DayMap `json:"data"`

	// Migration records which reader step produced this snapshot. Not
	// persisted.
	Migration string `json:"-"`
}

// NewSnapshot creates an empty canonical snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Data: logstore.DayMap{}, Migration: MigrationEmpty}
}

// envelope mirrors the current on-disk shape for detection.
type envelope struct {
	Settings *Settings        `json:"settings"`
	Data     *logstore.DayMap `json:"data"`
}

// UnmarshalJSON normalizes the three known snapshot shapes, tried in order:
// no data at all, a bare settings object, and the {settings, data} envelope.
// All three decode into the same canonical snapshot without data loss.
func (s *Snapshot) UnmarshalJSON(raw []byte) error {
	if migrateEmpty(s, raw) {
		return nil
	}

	var env envelope

	err := json.Unmarshal(raw, &env)
	if err == nil && (env.Settings != nil || env.Data != nil) {
		migrateEnvelope(s, env)

		return nil
	}

	return migrateBareSettings(s, raw)
}

// migrateEmpty maps an absent or null payload to a fresh snapshot.
func migrateEmpty(s *Snapshot, raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) != 0 && !bytes.Equal(trimmed, []byte("null")) {
		return false
	}

	*s = *NewSnapshot()

	return true
}

// migrateEnvelope adopts the current shape as-is.
func migrateEnvelope(s *Snapshot, env envelope) {
	*s = Snapshot{Migration: MigrationEnvelope, Data: logstore.DayMap{}}

	if env.Settings != nil {
		s.Settings = *env.Settings
	}

	if env.Data != nil {
		s.Data = *env.Data
	}
}

// migrateBareSettings treats the whole payload as the settings object.
func migrateBareSettings(s *Snapshot, raw []byte) error {
	var settings Settings

	err := json.Unmarshal(raw, &settings)
	if err != nil {
		return err
	}

	*s = Snapshot{Settings: settings, Data: logstore.DayMap{}, Migration: MigrationBareSettings}

	return nil
}
