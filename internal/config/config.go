// Package config loads lifelog settings from file, environment, and
// defaults. Domain definitions live here too; ids and legacy fields are
// repaired on load, never rejected.
package config

import (
	"lifelog/internal/chart"
	"lifelog/internal/model"
	"lifelog/internal/series"
)

// Defaults applied when the config file omits a setting.
const (
	DefaultDataDirName  = ".lifelog"
	DefaultSnapshotName = "lifelog"
	DefaultRange        = "7d"
	DefaultTheme        = "dark"
)

// Config holds all lifelog settings.
type Config struct {
	// DataDir is the directory holding the snapshot file.
	DataDir string `mapstructure:"data_dir"`

	// Compress stores the snapshot lz4-compressed instead of plain JSON.
	Compress bool `mapstructure:"compress"`

	// DefaultRange is the chart range used when --range is not given.
	DefaultRange string `mapstructure:"default_range"`

	// Smooth applies the moving-average filter to trend charts by default.
	Smooth bool `mapstructure:"smooth"`

	// Theme selects the dashboard color theme.
	Theme string `mapstructure:"theme"`

	// Domains are the configured life domains.
	Domains model.Domains `mapstructure:"domains"`
}

// Normalize repairs the loaded settings in place: unknown range keys and
// themes fall back to defaults. Domain normalization (id generation, legacy
// field migration) happens later, after persisted ids have been merged in,
// so that generated ids stay stable across runs.
func (c *Config) Normalize() (changed bool) {
	if _, err := series.ParseRangeKey(c.DefaultRange); err != nil {
		c.DefaultRange = DefaultRange
		changed = true
	}

	theme := string(chart.ParseTheme(c.Theme))
	if c.Theme != theme {
		c.Theme = theme
		changed = true
	}

	return changed
}
