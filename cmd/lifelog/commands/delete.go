package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrDomainOrAllRequired indicates the delete command was invoked with
// neither a domain argument nor --all.
var ErrDomainOrAllRequired = errors.New("either a domain argument or --all is required")

// NewDeleteCommand creates the `lifelog delete` command.
func NewDeleteCommand() *cobra.Command {
	var (
		state string
		index int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "delete <date> [domain]",
		Short: "Delete log entries for a date",
		Long: `Delete log entries for a date (YYYY-MM-DD). With --index, exactly that
entry is removed; with --state, all entries for that state; otherwise the
whole domain bucket. With --all, every domain's entries for the date go.
Deleting a bucket that does not exist is a silent no-op.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := newTracker(cmd)
			if err != nil {
				return err
			}

			dateKey := args[0]

			if all {
				tr.DeleteDate(dateKey)
				success(cmd.OutOrStdout(), "deleted all entries for %s", dateKey)

				return nil
			}

			if len(args) < 2 {
				return ErrDomainOrAllRequired
			}

			err = tr.Delete(dateKey, args[1], state, index)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "deleted entries for %s/%s", dateKey, args[1])

			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "delete only entries for this state")
	cmd.Flags().IntVar(&index, "index", -1, "delete exactly the entry at this position")
	cmd.Flags().BoolVar(&all, "all", false, "delete the entire date across all domains")

	return cmd
}
