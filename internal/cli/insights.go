package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Review relationship insights (list, read, act)",
	Long: `Insights surface observations about relationship health: connection
gaps, slipping important relationships, and upcoming life events worth a
conversation. Acting on a connection gap creates a suggestion to call
within three days.`,
}

var insightsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List current insights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		insights, err := Engine.Insights()
		if err != nil {
			return fmt.Errorf("listing insights: %w", err)
		}

		if len(insights) == 0 {
			fmt.Println("No insights right now.")
			return nil
		}

		for _, insight := range insights {
			marker := " "
			if insight.IsNew {
				marker = "*"
			}
			fmt.Printf("%s %s  [%s] %s (%s)\n", marker, insight.ID, strings.ToUpper(string(insight.Severity)), insight.Title, insight.RelationshipName)
			fmt.Printf("      %s\n", insight.Description)
			if insight.Recommendation != "" {
				fmt.Printf("      → %s\n", insight.Recommendation)
			}
		}
		return nil
	},
}

var insightsReadCmd = &cobra.Command{
	Use:   "read [insight-id]",
	Short: "Mark an insight as read, or all insights with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		allFlag, _ := cmd.Flags().GetBool("all")
		if allFlag {
			if err := Engine.MarkAllInsightsRead(); err != nil {
				return fmt.Errorf("marking insights read: %w", err)
			}
			fmt.Println("All insights marked read.")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide an insight ID or use --all")
		}
		if err := Engine.MarkInsightRead(args[0]); err != nil {
			return fmt.Errorf("marking insight %s read: %w", args[0], err)
		}
		fmt.Printf("Marked %s read\n", args[0])
		return nil
	},
}

var insightsActCmd = &cobra.Command{
	Use:   "act <insight-id>",
	Short: "Act on an insight",
	Long: `Act on an insight. Connection gap insights produce a high-energy call
suggestion three days out; other insight types are only marked read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		if err := Engine.TakeActionOnInsight(args[0]); err != nil {
			return fmt.Errorf("acting on insight %s: %w", args[0], err)
		}

		fmt.Printf("Acted on %s\n", args[0])
		return nil
	},
}

func init() {
	insightsReadCmd.Flags().Bool("all", false, "Mark every insight as read")

	insightsCmd.AddCommand(insightsListCmd)
	insightsCmd.AddCommand(insightsReadCmd)
	insightsCmd.AddCommand(insightsActCmd)

	rootCmd.AddCommand(insightsCmd)
}
