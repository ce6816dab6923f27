package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var remindersNotify bool

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show active reminders",
	Long: `Evaluate reminder conditions against the current data and display any
triggered reminders.

Reminders check for long-overdue relationships, days scheduled over the
energy budget, and suggestions that have gone stale. Use --notify to also
send the reminders to the configured Slack webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ReminderEngine == nil {
			return fmt.Errorf("reminder engine not initialized (observability may be disabled)")
		}

		reminders, err := ReminderEngine.Evaluate()
		if err != nil {
			return fmt.Errorf("evaluating reminders: %w", err)
		}

		if len(reminders) == 0 {
			fmt.Println("No active reminders.")
			return nil
		}

		fmt.Printf("%d active reminder(s):\n\n", len(reminders))
		for _, reminder := range reminders {
			severity := strings.ToUpper(string(reminder.Severity))
			fmt.Printf("  [%s] %s\n", severity, reminder.Message)
			fmt.Printf("         triggered at %s\n\n", reminder.TriggeredAt.Format("2006-01-02 15:04 UTC"))
		}

		if remindersNotify {
			if Notifier == nil {
				return fmt.Errorf("notifier not configured (set slack_webhook in .nurturerc)")
			}
			if err := Notifier.Notify(reminders); err != nil {
				return fmt.Errorf("sending reminders: %w", err)
			}
			fmt.Println("Sent to Slack.")
		}

		return nil
	},
}

func init() {
	remindersCmd.Flags().BoolVar(&remindersNotify, "notify", false, "Send reminders to the configured Slack webhook")
	rootCmd.AddCommand(remindersCmd)
}
