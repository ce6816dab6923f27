package cli

import (
	"fmt"

	"github.com/introware/nurture/pkg/models"
	"github.com/spf13/cobra"
)

var interactionCmd = &cobra.Command{
	Use:   "interaction",
	Short: "Manage scheduled interactions (schedule, today, list, complete, skip, reschedule, generate)",
	Long: `Manage the interaction ledger.

Schedule touch-points with your contacts, review today's plan, mark
interactions completed or skipped, and push them to a new date. Completing
an interaction updates the relationship's cadence.`,
}

var interactionScheduleCmd = &cobra.Command{
	Use:   "schedule <relationship-id> <date>",
	Short: "Schedule an interaction with a relationship",
	Long: `Schedule an interaction with the given relationship on the given date
(YYYY-MM-DD). Past dates are accepted; the ledger carries history as well
as plans.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		typeFlag, _ := cmd.Flags().GetString("type")
		durationFlag, _ := cmd.Flags().GetInt("duration")
		purposeFlag, _ := cmd.Flags().GetString("purpose")
		energyFlag, _ := cmd.Flags().GetInt("energy")

		interaction := models.ScheduledInteraction{
			RelationshipID:  args[0],
			ScheduledDate:   args[1],
			InteractionType: models.InteractionType(typeFlag),
			Duration:        durationFlag,
			Purpose:         purposeFlag,
			EnergyCost:      energyFlag,
			Status:          models.StatusPlanned,
		}

		scheduled, err := Scheduler.Schedule(interaction)
		if err != nil {
			return fmt.Errorf("scheduling interaction: %w", err)
		}

		fmt.Printf("Scheduled %s\n", scheduled.ID)
		fmt.Printf("  With: %s\n", scheduled.RelationshipID)
		fmt.Printf("  Date: %s\n", scheduled.ScheduledDate)
		fmt.Printf("  Type: %s\n", scheduled.InteractionType)

		return nil
	},
}

var interactionTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's interactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		// All() refreshes the today view from the ledger.
		if _, err := Scheduler.All(); err != nil {
			return fmt.Errorf("loading interactions: %w", err)
		}

		today := Scheduler.Today()
		if len(today) == 0 {
			fmt.Println("Nothing scheduled for today.")
			return nil
		}

		fmt.Printf("%d interaction(s) today:\n\n", len(today))
		for _, interaction := range today {
			printInteraction(interaction)
		}
		return nil
	},
}

var interactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scheduled interactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		interactions, err := Scheduler.All()
		if err != nil {
			return fmt.Errorf("listing interactions: %w", err)
		}

		if len(interactions) == 0 {
			fmt.Println("No interactions scheduled.")
			return nil
		}

		for _, interaction := range interactions {
			printInteraction(interaction)
		}
		return nil
	},
}

var interactionCompleteCmd = &cobra.Command{
	Use:   "complete <interaction-id>",
	Short: "Mark an interaction completed",
	Long: `Mark an interaction completed as of today. Completion notes are appended
to the interaction's preparation notes, and the relationship's cadence
advances from today.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		notesFlag, _ := cmd.Flags().GetString("notes")
		if err := Scheduler.Complete(args[0], notesFlag); err != nil {
			return fmt.Errorf("completing interaction %s: %w", args[0], err)
		}

		fmt.Printf("Completed %s\n", args[0])
		return nil
	},
}

var interactionSkipCmd = &cobra.Command{
	Use:   "skip <interaction-id>",
	Short: "Mark an interaction skipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		reasonFlag, _ := cmd.Flags().GetString("reason")
		if err := Scheduler.Skip(args[0], reasonFlag); err != nil {
			return fmt.Errorf("skipping interaction %s: %w", args[0], err)
		}

		fmt.Printf("Skipped %s\n", args[0])
		return nil
	},
}

var interactionRescheduleCmd = &cobra.Command{
	Use:   "reschedule <interaction-id> <new-date>",
	Short: "Move an interaction to a new date",
	Long: `Move an interaction to a new date (YYYY-MM-DD). The interaction returns
to the planned state, so it can be completed, skipped, or rescheduled
again.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		reasonFlag, _ := cmd.Flags().GetString("reason")
		if err := Scheduler.Reschedule(args[0], args[1], reasonFlag); err != nil {
			return fmt.Errorf("rescheduling interaction %s: %w", args[0], err)
		}

		fmt.Printf("Rescheduled %s to %s\n", args[0], args[1])
		return nil
	},
}

var interactionGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of interactions from the relationship list",
	Long: `Generate one planned interaction per relationship. Lead time scales with
importance: the most important contacts are scheduled within three days,
the least important within two weeks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("interaction scheduler not initialized")
		}

		generated, err := Scheduler.GenerateInteractions()
		if err != nil {
			return fmt.Errorf("generating interactions: %w", err)
		}

		if len(generated) == 0 {
			fmt.Println("No relationships to schedule.")
			return nil
		}

		fmt.Printf("Generated %d interaction(s):\n\n", len(generated))
		for _, interaction := range generated {
			printInteraction(interaction)
		}
		return nil
	},
}

// printInteraction writes a two-line summary of an interaction.
func printInteraction(interaction models.ScheduledInteraction) {
	name := interaction.RelationshipName
	if name == "" {
		name = interaction.RelationshipID
	}
	fmt.Printf("  %s  %s  %s (%s, %dm) [%s]\n", interaction.ID, interaction.ScheduledDate, name, interaction.InteractionType, interaction.Duration, interaction.Status)
	if interaction.Purpose != "" {
		fmt.Printf("      %s\n", interaction.Purpose)
	}
}

func init() {
	interactionScheduleCmd.Flags().String("type", "message", "Interaction type: call, message, meet, email, video, other")
	interactionScheduleCmd.Flags().Int("duration", 15, "Expected duration in minutes")
	interactionScheduleCmd.Flags().String("purpose", "", "What the interaction is for")
	interactionScheduleCmd.Flags().Int("energy", 2, "Energy cost from 1 to 10")

	interactionCompleteCmd.Flags().String("notes", "", "Notes to record against the interaction")
	interactionSkipCmd.Flags().String("reason", "", "Why the interaction was skipped")
	interactionRescheduleCmd.Flags().String("reason", "", "Why the interaction moved")

	interactionCmd.AddCommand(interactionScheduleCmd)
	interactionCmd.AddCommand(interactionTodayCmd)
	interactionCmd.AddCommand(interactionListCmd)
	interactionCmd.AddCommand(interactionCompleteCmd)
	interactionCmd.AddCommand(interactionSkipCmd)
	interactionCmd.AddCommand(interactionRescheduleCmd)
	interactionCmd.AddCommand(interactionGenerateCmd)

	rootCmd.AddCommand(interactionCmd)
}
