package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the `lifelog export` command.
func NewExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <domain>",
		Short: "Export a domain's full log history as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, _, err := newTracker(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				out, err = tr.ExportFilename(args[0], time.Now())
				if err != nil {
					return err
				}
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()

			err = tr.ExportCSV(args[0], f)
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "exported %s to %s", args[0], out)

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <domain>_<date>.csv)")

	return cmd
}
