package observability

import (
	"fmt"
	"time"

	"github.com/introware/nurture/pkg/models"
)

// ReminderSeverity represents the urgency of a reminder.
type ReminderSeverity string

const (
	SeverityHigh   ReminderSeverity = "high"
	SeverityMedium ReminderSeverity = "medium"
	SeverityLow    ReminderSeverity = "low"
)

// Reminder represents a triggered reminder condition.
type Reminder struct {
	ID          string           `json:"id"`
	Condition   string           `json:"condition"`
	Severity    ReminderSeverity `json:"severity"`
	Message     string           `json:"message"`
	TriggeredAt time.Time        `json:"triggered_at"`
}

// ReminderThresholds configures when reminders should fire.
type ReminderThresholds struct {
	OverdueDays         int `yaml:"overdue_threshold_days" json:"overdue_threshold_days"`
	MaxDailyEnergy      int `yaml:"max_daily_energy" json:"max_daily_energy"`
	StaleSuggestionDays int `yaml:"stale_suggestion_days" json:"stale_suggestion_days"`
}

// DefaultReminderThresholds returns sensible defaults for reminder thresholds.
func DefaultReminderThresholds() ReminderThresholds {
	return ReminderThresholds{
		OverdueDays:         7,
		MaxDailyEnergy:      12,
		StaleSuggestionDays: 14,
	}
}

// FrequencyLister supplies the current frequency records.
type FrequencyLister interface {
	Frequencies() ([]models.RelationshipFrequency, error)
}

// InteractionLister supplies every ledger entry.
type InteractionLister interface {
	All() ([]models.ScheduledInteraction, error)
}

// SuggestionLister supplies the pending suggestions.
type SuggestionLister interface {
	Suggestions() ([]models.ConnectionSuggestion, error)
}

// ReminderEngine evaluates reminder conditions against the live stores.
type ReminderEngine interface {
	Evaluate() ([]Reminder, error)
}

// reminderEngine implements ReminderEngine by checking thresholds against
// frequency records, the interaction ledger, and pending suggestions.
type reminderEngine struct {
	frequencies  FrequencyLister
	interactions InteractionLister
	suggestions  SuggestionLister
	thresholds   ReminderThresholds
	now          func() time.Time
}

// NewReminderEngine creates a ReminderEngine with the given sources and thresholds.
func NewReminderEngine(frequencies FrequencyLister, interactions InteractionLister, suggestions SuggestionLister, thresholds ReminderThresholds) ReminderEngine {
	return &reminderEngine{
		frequencies:  frequencies,
		interactions: interactions,
		suggestions:  suggestions,
		thresholds:   thresholds,
		now:          time.Now,
	}
}

// Evaluate checks all reminder conditions, returning any triggered reminders.
func (re *reminderEngine) Evaluate() ([]Reminder, error) {
	now := re.now().UTC()
	var reminders []Reminder

	overdueReminders, err := re.checkLongOverdue(now)
	if err != nil {
		return nil, fmt.Errorf("checking overdue relationships: %w", err)
	}
	reminders = append(reminders, overdueReminders...)

	overloadReminders, err := re.checkOverloadedDays(now)
	if err != nil {
		return nil, fmt.Errorf("checking overloaded days: %w", err)
	}
	reminders = append(reminders, overloadReminders...)

	staleReminders, err := re.checkStaleSuggestions(now)
	if err != nil {
		return nil, fmt.Errorf("checking stale suggestions: %w", err)
	}
	reminders = append(reminders, staleReminders...)

	return reminders, nil
}

// checkLongOverdue looks for relationships overdue past the threshold.
// Relationships overdue more than twice the threshold escalate to high.
func (re *reminderEngine) checkLongOverdue(now time.Time) ([]Reminder, error) {
	frequencies, err := re.frequencies.Frequencies()
	if err != nil {
		return nil, err
	}

	var reminders []Reminder
	for _, freq := range frequencies {
		if !freq.IsOverdue || freq.OverdueDays < re.thresholds.OverdueDays {
			continue
		}
		severity := SeverityMedium
		if freq.OverdueDays > 2*re.thresholds.OverdueDays {
			severity = SeverityHigh
		}
		reminders = append(reminders, Reminder{
			ID:          fmt.Sprintf("overdue-%s", freq.RelationshipID),
			Condition:   "relationship_long_overdue",
			Severity:    severity,
			Message:     fmt.Sprintf("relationship %s is %d days overdue for contact", freq.RelationshipID, freq.OverdueDays),
			TriggeredAt: now,
		})
	}

	return reminders, nil
}

// checkOverloadedDays sums the energy cost of planned interactions per date
// and reminds when a day exceeds the daily energy budget.
func (re *reminderEngine) checkOverloadedDays(now time.Time) ([]Reminder, error) {
	interactions, err := re.interactions.All()
	if err != nil {
		return nil, err
	}

	energyByDate := make(map[string]int)
	for _, interaction := range interactions {
		if interaction.Status != models.StatusPlanned {
			continue
		}
		energyByDate[interaction.ScheduledDate] += interaction.EnergyCost
	}

	var reminders []Reminder
	for date, energy := range energyByDate {
		if energy > re.thresholds.MaxDailyEnergy {
			reminders = append(reminders, Reminder{
				ID:          fmt.Sprintf("overload-%s", date),
				Condition:   "day_over_energy_budget",
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("%s has %d energy points planned, exceeding the budget of %d", date, energy, re.thresholds.MaxDailyEnergy),
				TriggeredAt: now,
			})
		}
	}

	return reminders, nil
}

// checkStaleSuggestions looks for pending suggestions whose suggested date
// has slipped further into the past than the threshold.
func (re *reminderEngine) checkStaleSuggestions(now time.Time) ([]Reminder, error) {
	suggestions, err := re.suggestions.Suggestions()
	if err != nil {
		return nil, err
	}

	threshold := time.Duration(re.thresholds.StaleSuggestionDays) * 24 * time.Hour
	var reminders []Reminder
	for _, suggestion := range suggestions {
		suggestedDate, err := time.Parse("2006-01-02", suggestion.SuggestedDate)
		if err != nil {
			continue
		}
		if now.Sub(suggestedDate) > threshold {
			reminders = append(reminders, Reminder{
				ID:          fmt.Sprintf("stale-%s", suggestion.ID),
				Condition:   "suggestion_stale",
				Severity:    SeverityLow,
				Message:     fmt.Sprintf("suggestion %s for %s has been pending for more than %d days", suggestion.ID, suggestion.RelationshipName, re.thresholds.StaleSuggestionDays),
				TriggeredAt: now,
			})
		}
	}

	return reminders, nil
}
