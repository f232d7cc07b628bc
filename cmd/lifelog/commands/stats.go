package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lifelog/internal/tracker"
)

// NewStatsCommand creates the `lifelog stats` command.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize per-domain activity over a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cfg, err := newTracker(cmd)
			if err != nil {
				return err
			}

			key, err := resolveRange(cmd, cfg)
			if err != nil {
				return err
			}

			stats := tr.Stats(key, time.Now())
			if len(stats) == 0 {
				notice(cmd.OutOrStdout(), "no domains configured; add them to .lifelog.yaml")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStatsTable(stats))

			return nil
		},
	}

	cmd.Flags().StringP("range", "r", "", "range window: 7d, 30d, 90d, 365d, or all")

	return cmd
}

func renderStatsTable(stats []tracker.DomainStats) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Domain", "Entries", "Sum", "Average", "Worst", "Last Logged"})

	for _, ds := range stats {
		last := "never"
		if !ds.LastLogged.IsZero() {
			last = humanize.Time(ds.LastLogged)
		}

		tbl.AppendRow(table.Row{
			ds.Domain.Name,
			ds.Entries,
			ds.Sum,
			fmt.Sprintf("%.3f", ds.Average),
			ds.Worst,
			last,
		})
	}

	return tbl.Render()
}
