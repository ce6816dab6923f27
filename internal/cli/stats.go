package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the nurturing dashboard statistics",
	Long: `Show today's and this week's planned and completed interactions, how
many relationships are overdue, how many are healthy, and how many life
events are coming up in the next two weeks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if StatsCalc == nil {
			return fmt.Errorf("stats calculator not initialized")
		}

		stats, err := StatsCalc.Calculate()
		if err != nil {
			return fmt.Errorf("calculating stats: %w", err)
		}

		fmt.Println("Nurturing stats")
		fmt.Printf("  Today:      %d planned, %d completed\n", stats.PlannedToday, stats.CompletedToday)
		fmt.Printf("  This week:  %d planned, %d completed\n", stats.PlannedThisWeek, stats.CompletedThisWeek)
		fmt.Printf("  Overdue:    %d relationship(s)\n", stats.OverdueCount)
		fmt.Printf("  Healthy:    %d relationship(s)\n", stats.HealthyRelationships)
		fmt.Printf("  Attention:  %d relationship(s)\n", stats.NeedsAttentionCount)
		fmt.Printf("  Events:     %d in the next 14 days\n", stats.UpcomingEvents)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
