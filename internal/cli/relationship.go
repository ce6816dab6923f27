package cli

import (
	"fmt"
	"strings"

	"github.com/introware/nurture/pkg/models"
	"github.com/spf13/cobra"
)

var relationshipCmd = &cobra.Command{
	Use:   "relationship",
	Short: "Manage relationships (add, list, remove, event)",
	Long: `Unified relationship management commands.

Add the people you want to stay in touch with, list them with their
cadence state, record life events, and remove contacts you no longer
track.`,
}

var relationshipAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new relationship",
	Long: `Add a new relationship with the given name.

The relationship is registered with its category's default contact
cadence. Use --category and --importance to classify the contact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if RelationshipMgr == nil {
			return fmt.Errorf("relationship manager not initialized")
		}

		categoryFlag, _ := cmd.Flags().GetString("category")
		importanceFlag, _ := cmd.Flags().GetInt("importance")
		notesFlag, _ := cmd.Flags().GetString("notes")
		interestsFlag, _ := cmd.Flags().GetStringSlice("interests")

		id, err := RelIDs.GenerateID()
		if err != nil {
			return fmt.Errorf("generating relationship ID: %w", err)
		}

		rel := models.Relationship{
			ID:         id,
			Name:       args[0],
			Category:   categoryFlag,
			Importance: importanceFlag,
			Notes:      notesFlag,
			Interests:  interestsFlag,
		}

		if err := RelationshipMgr.Load(); err != nil {
			return fmt.Errorf("loading relationships: %w", err)
		}
		if err := RelationshipMgr.Add(rel); err != nil {
			return fmt.Errorf("adding relationship: %w", err)
		}
		if err := RelationshipMgr.Save(); err != nil {
			return fmt.Errorf("saving relationships: %w", err)
		}

		if Tracker != nil {
			if err := Tracker.EnsureTracked(rel.ID); err != nil {
				return fmt.Errorf("registering cadence for %s: %w", rel.ID, err)
			}
		}

		fmt.Printf("Added relationship %s\n", rel.ID)
		fmt.Printf("  Name:       %s\n", rel.Name)
		if rel.Category != "" {
			fmt.Printf("  Category:   %s\n", rel.Category)
		}
		fmt.Printf("  Importance: %d\n", rel.Importance)

		return nil
	},
}

var relationshipListCmd = &cobra.Command{
	Use:   "list",
	Short: "List relationships with their cadence state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if RelationshipMgr == nil {
			return fmt.Errorf("relationship manager not initialized")
		}

		if err := RelationshipMgr.Load(); err != nil {
			return fmt.Errorf("loading relationships: %w", err)
		}
		relationships, err := RelationshipMgr.GetAll()
		if err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}

		if len(relationships) == 0 {
			fmt.Println("No relationships yet. Add one with 'nurture relationship add <name>'.")
			return nil
		}

		frequencies := map[string]models.RelationshipFrequency{}
		if Tracker != nil {
			if err := Tracker.RefreshOverdue(); err != nil {
				return fmt.Errorf("refreshing overdue state: %w", err)
			}
			freqs, err := Tracker.Frequencies()
			if err != nil {
				return fmt.Errorf("listing frequencies: %w", err)
			}
			for _, freq := range freqs {
				frequencies[freq.RelationshipID] = freq
			}
		}

		for _, rel := range relationships {
			fmt.Printf("%s  %s", rel.ID, rel.Name)
			if rel.Category != "" {
				fmt.Printf(" (%s)", rel.Category)
			}
			fmt.Println()

			if freq, ok := frequencies[rel.ID]; ok {
				fmt.Printf("      last: %s  next: %s", orDash(freq.LastInteraction), orDash(freq.NextScheduled))
				if freq.IsOverdue {
					fmt.Printf("  OVERDUE %dd", freq.OverdueDays)
				}
				fmt.Println()
			}
		}

		return nil
	},
}

var relationshipRemoveCmd = &cobra.Command{
	Use:   "remove <relationship-id>",
	Short: "Remove a relationship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if RelationshipMgr == nil {
			return fmt.Errorf("relationship manager not initialized")
		}

		if err := RelationshipMgr.Load(); err != nil {
			return fmt.Errorf("loading relationships: %w", err)
		}
		if err := RelationshipMgr.Remove(args[0]); err != nil {
			return fmt.Errorf("removing relationship %s: %w", args[0], err)
		}
		if err := RelationshipMgr.Save(); err != nil {
			return fmt.Errorf("saving relationships: %w", err)
		}

		fmt.Printf("Removed relationship %s\n", args[0])
		return nil
	},
}

var relationshipEventCmd = &cobra.Command{
	Use:   "event <relationship-id>",
	Short: "Record a life event for a relationship",
	Long: `Record a dated life event (birthday, anniversary, promotion) against a
relationship. Events within the next two weeks show up in the stats and
feed conversation suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if RelationshipMgr == nil {
			return fmt.Errorf("relationship manager not initialized")
		}

		typeFlag, _ := cmd.Flags().GetString("type")
		dateFlag, _ := cmd.Flags().GetString("date")
		descFlag, _ := cmd.Flags().GetString("description")
		recurringFlag, _ := cmd.Flags().GetBool("recurring")
		reminderFlag, _ := cmd.Flags().GetInt("reminder-days")

		if dateFlag == "" {
			return fmt.Errorf("--date is required (YYYY-MM-DD)")
		}

		event := models.LifeEvent{
			RelationshipID:     args[0],
			EventType:          typeFlag,
			Date:               dateFlag,
			Description:        descFlag,
			Recurring:          recurringFlag,
			ReminderDaysBefore: reminderFlag,
		}

		if err := RelationshipMgr.Load(); err != nil {
			return fmt.Errorf("loading relationships: %w", err)
		}
		if err := RelationshipMgr.AddLifeEvent(args[0], event); err != nil {
			return fmt.Errorf("recording life event for %s: %w", args[0], err)
		}
		if err := RelationshipMgr.Save(); err != nil {
			return fmt.Errorf("saving relationships: %w", err)
		}

		fmt.Printf("Recorded %s on %s for %s\n", typeFlag, dateFlag, args[0])
		return nil
	},
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func init() {
	relationshipAddCmd.Flags().String("category", "friends", "Relationship category (e.g. family, close friends, friends, work contacts)")
	relationshipAddCmd.Flags().Int("importance", 3, "Importance from 1 (lowest) to 5 (highest)")
	relationshipAddCmd.Flags().String("notes", "", "Free-form notes about the contact")
	relationshipAddCmd.Flags().StringSlice("interests", nil, "Comma-separated interests")

	relationshipEventCmd.Flags().String("type", "other", "Event type (birthday, anniversary, promotion, other)")
	relationshipEventCmd.Flags().String("date", "", "Event date (YYYY-MM-DD)")
	relationshipEventCmd.Flags().String("description", "", "Event description")
	relationshipEventCmd.Flags().Bool("recurring", false, "Whether the event recurs every year")
	relationshipEventCmd.Flags().Int("reminder-days", 7, "How many days before the event to remind")

	relationshipCmd.AddCommand(relationshipAddCmd)
	relationshipCmd.AddCommand(relationshipListCmd)
	relationshipCmd.AddCommand(relationshipRemoveCmd)
	relationshipCmd.AddCommand(relationshipEventCmd)

	rootCmd.AddCommand(relationshipCmd)
}
