// Package main provides the entry point for the lifelog CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifelog/cmd/lifelog/commands"
	"lifelog/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "lifelog",
		Short: "Lifelog - track scored states against your life domains",
		Long: `Lifelog records discrete state events against user-defined life domains
and visualizes aggregated trends.

Commands:
  log       Record a state event for a domain
  delete    Delete log entries for a date
  domains   List configured domains and their states
  stats     Summarize per-domain activity over a range
  chart     Render the trend dashboard
  export    Export a domain's log history as CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default .lifelog.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Add commands.
	rootCmd.AddCommand(commands.NewLogCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewDomainsCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewChartCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "lifelog %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
