package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Manage connection suggestions (generate, list, apply, skip)",
	Long: `Connection suggestions propose interactions with overdue relationships.

Generate suggestions from the current overdue state, review them, then
apply the ones you want (turning them into scheduled interactions) and
skip the rest.`,
}

var suggestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate suggestions for overdue relationships",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		generated, err := Engine.GenerateSuggestions()
		if err != nil {
			return fmt.Errorf("generating suggestions: %w", err)
		}

		if len(generated) == 0 {
			fmt.Println("No new suggestions; nothing is overdue and uncovered.")
			return nil
		}

		fmt.Printf("Generated %d suggestion(s):\n\n", len(generated))
		for _, suggestion := range generated {
			fmt.Printf("  %s  P%d  %s via %s on %s\n", suggestion.ID, suggestion.Priority, suggestion.RelationshipName, suggestion.InteractionType, suggestion.SuggestedDate)
			fmt.Printf("      %s\n", suggestion.ReasonForSuggestion)
		}
		return nil
	},
}

var suggestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending suggestions by priority",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		suggestions, err := Engine.Suggestions()
		if err != nil {
			return fmt.Errorf("listing suggestions: %w", err)
		}

		if len(suggestions) == 0 {
			fmt.Println("No pending suggestions.")
			return nil
		}

		for _, suggestion := range suggestions {
			fmt.Printf("  %s  P%d  %s via %s on %s %s\n", suggestion.ID, suggestion.Priority, suggestion.RelationshipName, suggestion.InteractionType, suggestion.SuggestedDate, suggestion.SuggestedTime)
			fmt.Printf("      %s\n", suggestion.ReasonForSuggestion)
		}
		return nil
	},
}

var suggestApplyCmd = &cobra.Command{
	Use:   "apply <suggestion-id>",
	Short: "Turn a suggestion into a scheduled interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		scheduled, err := Engine.Apply(args[0])
		if err != nil {
			return fmt.Errorf("applying suggestion %s: %w", args[0], err)
		}
		if scheduled == nil {
			fmt.Printf("Suggestion %s not found.\n", args[0])
			return nil
		}

		fmt.Printf("Scheduled %s from suggestion %s\n", scheduled.ID, args[0])
		fmt.Printf("  Date: %s\n", scheduled.ScheduledDate)
		fmt.Printf("  Type: %s (%dm)\n", scheduled.InteractionType, scheduled.Duration)
		return nil
	},
}

var suggestSkipCmd = &cobra.Command{
	Use:   "skip <suggestion-id>",
	Short: "Discard a suggestion without scheduling it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Engine == nil {
			return fmt.Errorf("suggestion engine not initialized")
		}

		if err := Engine.SkipSuggestion(args[0]); err != nil {
			return fmt.Errorf("skipping suggestion %s: %w", args[0], err)
		}

		fmt.Printf("Skipped suggestion %s\n", args[0])
		return nil
	},
}

func init() {
	suggestCmd.AddCommand(suggestGenerateCmd)
	suggestCmd.AddCommand(suggestListCmd)
	suggestCmd.AddCommand(suggestApplyCmd)
	suggestCmd.AddCommand(suggestSkipCmd)

	rootCmd.AddCommand(suggestCmd)
}
