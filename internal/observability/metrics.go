package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	CheckinsScheduled  int            `json:"checkins_scheduled"`
	CheckinsCompleted  int            `json:"checkins_completed"`
	CheckinsSkipped    int            `json:"checkins_skipped"`
	CompletedByType    map[string]int `json:"completed_by_type"`
	SuggestionsApplied int            `json:"suggestions_applied"`
	SuggestionsSkipped int            `json:"suggestions_skipped"`
	EventCount         int            `json:"event_count"`
	OldestEvent        *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent        *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		CompletedByType: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "interaction.scheduled":
			m.CheckinsScheduled++
		case "interaction.completed":
			m.CheckinsCompleted++
			if interactionType, ok := event.Data["type"].(string); ok {
				m.CompletedByType[interactionType]++
			}
		case "interaction.skipped":
			m.CheckinsSkipped++
		case "suggestion.applied":
			m.SuggestionsApplied++
		case "suggestion.skipped":
			m.SuggestionsSkipped++
		}
	}

	return m, nil
}
