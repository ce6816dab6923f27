package cli

import (
	"fmt"

	"github.com/introware/nurture/pkg/models"
	"github.com/spf13/cobra"
)

var cadenceCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Manage contact cadences (set, default, list)",
	Long: `Control how often each relationship should be contacted.

Relationships start on their category's default cadence from the
configuration file. Use 'cadence set' to give a relationship its own
rhythm, and 'cadence default' to revert it.`,
}

var cadenceSetCmd = &cobra.Command{
	Use:   "set <relationship-id>",
	Short: "Set a custom contact cadence for a relationship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tracker == nil {
			return fmt.Errorf("frequency tracker not initialized")
		}

		everyFlag, _ := cmd.Flags().GetInt("every")
		unitFlag, _ := cmd.Flags().GetString("unit")
		flexFlag, _ := cmd.Flags().GetInt("flexibility")

		unit := models.FrequencyUnit(unitFlag)
		switch unit {
		case models.UnitDays, models.UnitWeeks, models.UnitMonths:
		default:
			return fmt.Errorf("invalid unit %q: must be one of days, weeks, months", unitFlag)
		}
		if everyFlag <= 0 {
			return fmt.Errorf("--every must be positive, got %d", everyFlag)
		}

		custom := models.CustomFrequency{
			Unit:            unit,
			Value:           everyFlag,
			FlexibilityDays: flexFlag,
		}

		if err := Tracker.SetCustomCadence(args[0], custom); err != nil {
			return fmt.Errorf("setting cadence for %s: %w", args[0], err)
		}

		fmt.Printf("Set cadence for %s: every %d %s\n", args[0], everyFlag, unitFlag)
		return nil
	},
}

var cadenceDefaultCmd = &cobra.Command{
	Use:   "default <relationship-id>",
	Short: "Revert a relationship to its category's default cadence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tracker == nil {
			return fmt.Errorf("frequency tracker not initialized")
		}

		if err := Tracker.UseCategoryDefault(args[0]); err != nil {
			return fmt.Errorf("reverting cadence for %s: %w", args[0], err)
		}

		fmt.Printf("Relationship %s now follows its category default\n", args[0])
		return nil
	},
}

var cadenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cadence records with overdue state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Tracker == nil {
			return fmt.Errorf("frequency tracker not initialized")
		}

		if err := Tracker.RefreshOverdue(); err != nil {
			return fmt.Errorf("refreshing overdue state: %w", err)
		}
		frequencies, err := Tracker.Frequencies()
		if err != nil {
			return fmt.Errorf("listing frequencies: %w", err)
		}

		if len(frequencies) == 0 {
			fmt.Println("No cadence records yet.")
			return nil
		}

		for _, freq := range frequencies {
			source := "category default"
			if !freq.CategoryDefault && freq.CustomFrequency != nil {
				source = fmt.Sprintf("every %d %s", freq.CustomFrequency.Value, freq.CustomFrequency.Unit)
			}
			fmt.Printf("%s  %s\n", freq.RelationshipID, source)
			fmt.Printf("      last: %s  next: %s", orDash(freq.LastInteraction), orDash(freq.NextScheduled))
			if freq.IsOverdue {
				fmt.Printf("  OVERDUE %dd", freq.OverdueDays)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	cadenceSetCmd.Flags().Int("every", 1, "Cadence interval value")
	cadenceSetCmd.Flags().String("unit", "weeks", "Cadence unit: days, weeks, or months")
	cadenceSetCmd.Flags().Int("flexibility", 0, "Acceptable slack in days around the cadence")

	cadenceCmd.AddCommand(cadenceSetCmd)
	cadenceCmd.AddCommand(cadenceDefaultCmd)
	cadenceCmd.AddCommand(cadenceListCmd)

	rootCmd.AddCommand(cadenceCmd)
}
