package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Notifier delivers a batch of reminders to an external channel.
type Notifier interface {
	Notify(reminders []Reminder) error
}

// slackNotifier posts reminder batches to a Slack incoming webhook as a
// block-kit message: one header, then a section per reminder separated
// by dividers.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier posting to the given webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify posts the reminders to the webhook. An empty batch is a no-op
// so callers can pass the reminder engine's output straight through.
func (s *slackNotifier) Notify(reminders []Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	body, err := json.Marshal(buildReminderMessage(reminders))
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func buildReminderMessage(reminders []Reminder) slackMessage {
	blocks := make([]slackBlock, 0, 2*len(reminders))
	blocks = append(blocks, slackBlock{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: "Nurture reminders"},
	})

	for i, reminder := range reminders {
		if i > 0 {
			blocks = append(blocks, slackBlock{Type: "divider"})
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: reminderText(reminder)},
		})
	}

	return slackMessage{Blocks: blocks}
}

func reminderText(reminder Reminder) string {
	return fmt.Sprintf("%s *[%s]* %s\n_%s · %s_",
		severityEmoji(reminder.Severity),
		strings.ToUpper(string(reminder.Severity)),
		reminder.Message,
		reminder.Condition,
		reminder.TriggeredAt.Format("2006-01-02 15:04 UTC"),
	)
}

func severityEmoji(severity ReminderSeverity) string {
	switch severity {
	case SeverityHigh:
		return "\U0001f534"
	case SeverityMedium:
		return "\U0001f7e1"
	default:
		return "\U0001f535"
	}
}
