package core

import (
	"fmt"
	"time"

	"github.com/introware/nurture/pkg/models"
)

// CalculateStats derives a dashboard snapshot from the ledger, the
// relationship list, and the frequency records. It is a pure function of
// its inputs and the given reference time.
//
// The week window is [startOfWeek, startOfWeek+7d) with a Sunday start.
// needsAttentionCount is derived by subtraction, so a relationship with no
// frequency record counts as needing attention even though it was never
// flagged overdue.
func CalculateStats(interactions []models.ScheduledInteraction, relationships []models.Relationship, frequencies []models.RelationshipFrequency, now time.Time) models.NurturingStats {
	today := FormatDate(now)
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var stats models.NurturingStats

	for _, interaction := range interactions {
		if interaction.ScheduledDate == today {
			stats.PlannedToday++
			if interaction.Status == models.StatusCompleted {
				stats.CompletedToday++
			}
		}

		date, err := ParseDate(interaction.ScheduledDate)
		if err != nil {
			continue
		}
		if !date.Before(weekStart) && date.Before(weekEnd) {
			stats.PlannedThisWeek++
			if interaction.Status == models.StatusCompleted {
				stats.CompletedThisWeek++
			}
		}
	}

	byRelationship := make(map[string]models.RelationshipFrequency, len(frequencies))
	for _, freq := range frequencies {
		byRelationship[freq.RelationshipID] = freq
		if freq.IsOverdue {
			stats.OverdueCount++
		}
	}

	for _, rel := range relationships {
		if freq, ok := byRelationship[rel.ID]; ok && !freq.IsOverdue {
			stats.HealthyRelationships++
		}
	}
	stats.NeedsAttentionCount = len(relationships) - stats.HealthyRelationships

	for _, rel := range relationships {
		for _, event := range rel.LifeEvents {
			eventDate, err := ParseDate(event.Date)
			if err != nil {
				continue
			}
			daysUntil := daysBetween(now, eventDate)
			if daysUntil >= 0 && daysUntil <= 14 {
				stats.UpcomingEvents++
			}
		}
	}

	return stats
}

// StatsCalculator produces a NurturingStats snapshot from the live stores,
// refreshing overdue state first so the counts reflect today.
type StatsCalculator interface {
	Calculate() (*models.NurturingStats, error)
}

type statsCalculator struct {
	ledger  LedgerStore
	rels    RelationshipReader
	tracker FrequencyTracker
	now     func() time.Time
}

// NewStatsCalculator creates a StatsCalculator over the given stores.
func NewStatsCalculator(ledger LedgerStore, rels RelationshipReader, tracker FrequencyTracker) StatsCalculator {
	return &statsCalculator{
		ledger:  ledger,
		rels:    rels,
		tracker: tracker,
		now:     time.Now,
	}
}

func (c *statsCalculator) Calculate() (*models.NurturingStats, error) {
	if err := c.tracker.RefreshOverdue(); err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}

	if err := c.ledger.Load(); err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}
	interactions, err := c.ledger.GetAll()
	if err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}

	if err := c.rels.Load(); err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}
	relationships, err := c.rels.GetAll()
	if err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}

	frequencies, err := c.tracker.Frequencies()
	if err != nil {
		return nil, fmt.Errorf("calculating stats: %w", err)
	}

	stats := CalculateStats(interactions, relationships, frequencies, c.now())
	return &stats, nil
}
