package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var metricsSince string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregated metrics from the event log",
	Long: `Aggregate the event log into scheduling metrics: how many check-ins were
scheduled, completed, and skipped, broken down by interaction type, plus
suggestion activity.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		days := 7
		if metricsSince != "" {
			if _, err := fmt.Sscanf(metricsSince, "%dd", &days); err != nil {
				return fmt.Errorf("invalid --since %q: use a day count like 7d or 30d", metricsSince)
			}
		}
		since := time.Now().UTC().AddDate(0, 0, -days)

		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		fmt.Printf("Metrics (last %dd)\n", days)
		fmt.Printf("  Events:      %d\n", metrics.EventCount)
		fmt.Printf("  Scheduled:   %d\n", metrics.CheckinsScheduled)
		fmt.Printf("  Completed:   %d\n", metrics.CheckinsCompleted)
		fmt.Printf("  Skipped:     %d\n", metrics.CheckinsSkipped)
		fmt.Printf("  Suggestions: %d applied, %d skipped\n", metrics.SuggestionsApplied, metrics.SuggestionsSkipped)

		if len(metrics.CompletedByType) > 0 {
			fmt.Println("  Completed by type:")
			for interactionType, count := range metrics.CompletedByType {
				fmt.Printf("    %-10s %d\n", interactionType, count)
			}
		}

		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d)")
	rootCmd.AddCommand(metricsCmd)
}
