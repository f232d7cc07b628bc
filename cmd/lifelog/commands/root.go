// Package commands implements CLI command handlers for lifelog.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lifelog/internal/config"
	"lifelog/internal/series"
	"lifelog/internal/tracker"
)

// atLayouts are the accepted spellings for the --at flag, tried in order.
var atLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// newTracker loads config and snapshot state for a command invocation.
func newTracker(cmd *cobra.Command) (*tracker.Tracker, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	tr, err := tracker.New(cfg, newLogger(verbose))
	if err != nil {
		return nil, nil, err
	}

	return tr, cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveRange picks the range key from the flag or the configured default.
func resolveRange(cmd *cobra.Command, cfg *config.Config) (series.RangeKey, error) {
	spelling, _ := cmd.Flags().GetString("range")
	if spelling == "" {
		spelling = cfg.DefaultRange
	}

	key, err := series.ParseRangeKey(spelling)
	if err != nil {
		return key, fmt.Errorf("%w: %q (expected 7d, 30d, 90d, 365d, or all)", series.ErrUnknownRange, spelling)
	}

	return key, nil
}

// parseAt parses the --at flag in the local zone, defaulting to now.
func parseAt(spelling string) (time.Time, error) {
	if spelling == "" {
		return time.Now(), nil
	}

	for _, layout := range atLayouts {
		at, err := time.ParseInLocation(layout, spelling, time.Local)
		if err == nil {
			return at, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (expected RFC3339, YYYY-MM-DD HH:MM, or YYYY-MM-DD)", spelling)
}

// notice prints a transient informational message.
func notice(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

// success prints a confirmation message.
func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", args...)
}
