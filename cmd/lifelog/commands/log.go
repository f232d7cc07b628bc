package commands

import (
	"github.com/spf13/cobra"
)

// NewLogCommand creates the `lifelog log` command.
func NewLogCommand() *cobra.Command {
	var (
		note string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "log <domain> <state>",
		Short: "Record a state event for a domain",
		Long: `Record a state event for a domain. Domain and state may be referenced
by id or by name. The state's current score is captured with the entry and
never re-derived, so later configuration edits do not rewrite history.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := newTracker(cmd)
			if err != nil {
				return err
			}

			when, err := parseAt(at)
			if err != nil {
				return err
			}

			entry, dateKey, err := tr.AddLog(args[0], args[1], note, when)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "logged %s/%s (score %+d) on %s", args[0], args[1], entry.Score, dateKey)

			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note attached to the entry")
	cmd.Flags().StringVar(&at, "at", "", "timestamp for the entry (default now)")

	return cmd
}
