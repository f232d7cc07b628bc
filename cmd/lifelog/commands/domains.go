package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"lifelog/internal/model"
)

// NewDomainsCommand creates the `lifelog domains` command.
func NewDomainsCommand() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List configured domains and their states",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, _, err := newTracker(cmd)
			if err != nil {
				return err
			}

			domains := tr.Domains()
			if len(domains) == 0 {
				notice(cmd.OutOrStdout(), "no domains configured; add them to .lifelog.yaml")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDomainsTable(domains, showIDs))

			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "include generated ids in the output")

	return cmd
}

func renderDomainsTable(domains model.Domains, showIDs bool) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	if showIDs {
		tbl.AppendHeader(table.Row{"Domain", "Aggregation", "States", "ID"})
	} else {
		tbl.AppendHeader(table.Row{"Domain", "Aggregation", "States"})
	}

	for i := range domains {
		domain := &domains[i]

		states := make([]string, 0, len(domain.States))
		for _, s := range domain.States {
			states = append(states, fmt.Sprintf("%s (%+d)", s.Name, s.Score))
		}

		row := table.Row{domain.Name, domain.Aggregation.String(), strings.Join(states, ", ")}
		if showIDs {
			row = append(row, domain.ID)
		}

		tbl.AppendRow(row)
	}

	return tbl.Render()
}
