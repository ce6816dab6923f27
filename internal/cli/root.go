package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "nurture",
	Short: "Relationship nurturing scheduler",
	Long: `nurture is a relationship nurturing scheduler that keeps track of how
often you want to be in touch with the people who matter, schedules
interactions at the right cadence, and surfaces suggestions when a
relationship starts to slip.

It provides CLI commands for managing relationships, setting contact
cadences, scheduling and completing interactions, and reviewing
suggestions and insights.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nurture %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
