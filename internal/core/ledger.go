package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/introware/nurture/internal/storage"
	"github.com/introware/nurture/pkg/models"
)

// LedgerStore is the subset of storage.InteractionManager that the
// scheduler needs.
type LedgerStore interface {
	Add(interaction models.ScheduledInteraction) error
	Merge(id string, updates models.ScheduledInteraction) error
	Get(id string) (*models.ScheduledInteraction, error)
	GetAll() ([]models.ScheduledInteraction, error)
	Load() error
	Save() error
}

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// InteractionScheduler owns the interaction ledger lifecycle:
// planned → completed | skipped | rescheduled (which re-enters planned).
//
// Lifecycle operations on unknown IDs are silent no-ops; see
// FrequencyTracker for the rationale. Scheduling into the past is
// permitted: the ledger carries history as well as plans.
type InteractionScheduler interface {
	Schedule(interaction models.ScheduledInteraction) (*models.ScheduledInteraction, error)
	Update(id string, updates models.ScheduledInteraction) error
	Complete(id string, notes string) error
	Skip(id string, reason string) error
	Reschedule(id string, newDate string, reason string) error
	Today() []models.ScheduledInteraction
	All() ([]models.ScheduledInteraction, error)
	GenerateInteractions() ([]models.ScheduledInteraction, error)
}

type interactionScheduler struct {
	ledger  LedgerStore
	rels    RelationshipReader
	tracker FrequencyTracker
	idGen   IDGenerator
	events  EventLogger // may be nil
	now     func() time.Time

	// today is the view of interactions scheduled for the current date.
	// It is recomputed from the full ledger after every mutation rather
	// than maintained incrementally.
	today []models.ScheduledInteraction
}

// NewInteractionScheduler creates an InteractionScheduler over the given
// stores. events may be nil if observability is disabled.
func NewInteractionScheduler(ledger LedgerStore, rels RelationshipReader, tracker FrequencyTracker, idGen IDGenerator, events EventLogger) InteractionScheduler {
	return &interactionScheduler{
		ledger:  ledger,
		rels:    rels,
		tracker: tracker,
		idGen:   idGen,
		events:  events,
		now:     time.Now,
	}
}

// Schedule assigns a new ID to the interaction and appends it to the
// ledger. An interaction scheduled for today is also appended to the today
// view directly; the full recompute happens on the next mutation.
func (s *interactionScheduler) Schedule(interaction models.ScheduledInteraction) (*models.ScheduledInteraction, error) {
	id, err := s.idGen.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("scheduling interaction: %w", err)
	}
	interaction.ID = id
	if interaction.Status == "" {
		interaction.Status = models.StatusPlanned
	}

	if err := s.ledger.Load(); err != nil {
		return nil, fmt.Errorf("scheduling interaction: %w", err)
	}
	if err := s.ledger.Add(interaction); err != nil {
		return nil, fmt.Errorf("scheduling interaction: %w", err)
	}
	if err := s.ledger.Save(); err != nil {
		return nil, fmt.Errorf("scheduling interaction: %w", err)
	}

	if interaction.ScheduledDate == FormatDate(s.now()) {
		s.today = append(s.today, interaction)
	}

	s.logEvent("interaction.scheduled", map[string]any{
		"interaction_id":  interaction.ID,
		"relationship_id": interaction.RelationshipID,
		"scheduled_date":  interaction.ScheduledDate,
		"type":            string(interaction.InteractionType),
	})

	return &interaction, nil
}

// Update merges the given fields into the matching record. Unknown IDs are
// a no-op.
func (s *interactionScheduler) Update(id string, updates models.ScheduledInteraction) error {
	return s.mutate(id, "updating", func(existing *models.ScheduledInteraction) models.ScheduledInteraction {
		return updates
	})
}

// Complete marks the interaction completed as of today, appends notes to
// the preparation notes, and propagates the completion to the frequency
// tracker.
func (s *interactionScheduler) Complete(id string, notes string) error {
	completedDate := FormatDate(s.now())
	var completed *models.ScheduledInteraction

	err := s.mutate(id, "completing", func(existing *models.ScheduledInteraction) models.ScheduledInteraction {
		updates := models.ScheduledInteraction{
			Status:        models.StatusCompleted,
			CompletedDate: completedDate,
		}
		if notes != "" {
			if existing.PreparationNotes != "" {
				updates.PreparationNotes = existing.PreparationNotes + "\n" + notes
			} else {
				updates.PreparationNotes = notes
			}
		}
		completed = existing
		return updates
	})
	if err != nil {
		return err
	}
	if completed == nil {
		return nil // unknown ID, nothing to propagate
	}

	s.logEvent("interaction.completed", map[string]any{
		"interaction_id":  id,
		"relationship_id": completed.RelationshipID,
		"type":            string(completed.InteractionType),
	})

	return s.tracker.UpdateAfterInteraction(*completed, completedDate)
}

// Skip marks the interaction skipped, prefixing the preparation notes with
// the reason when one is given.
func (s *interactionScheduler) Skip(id string, reason string) error {
	var skipped bool
	err := s.mutate(id, "skipping", func(existing *models.ScheduledInteraction) models.ScheduledInteraction {
		skipped = true
		updates := models.ScheduledInteraction{Status: models.StatusSkipped}
		if reason != "" {
			updates.PreparationNotes = prefixNotes("Skipped: "+reason, existing.PreparationNotes)
		}
		return updates
	})
	if err != nil || !skipped {
		return err
	}

	s.logEvent("interaction.skipped", map[string]any{
		"interaction_id": id,
		"reason":         reason,
	})
	return nil
}

// Reschedule moves the interaction to a new date and resets it to planned,
// so it may be completed, skipped, or rescheduled again. No validation is
// applied to newDate beyond date syntax elsewhere; past dates are allowed.
func (s *interactionScheduler) Reschedule(id string, newDate string, reason string) error {
	var rescheduled bool
	err := s.mutate(id, "rescheduling", func(existing *models.ScheduledInteraction) models.ScheduledInteraction {
		rescheduled = true
		updates := models.ScheduledInteraction{
			ScheduledDate: newDate,
			Status:        models.StatusPlanned,
		}
		if reason != "" {
			updates.PreparationNotes = prefixNotes("Rescheduled: "+reason, existing.PreparationNotes)
		}
		return updates
	})
	if err != nil || !rescheduled {
		return err
	}

	s.logEvent("interaction.rescheduled", map[string]any{
		"interaction_id": id,
		"new_date":       newDate,
		"reason":         reason,
	})
	return nil
}

// mutate loads the ledger, applies buildUpdates to the existing record,
// merges, saves, and recomputes the today view. Unknown IDs are swallowed:
// buildUpdates is simply never called.
func (s *interactionScheduler) mutate(id string, verb string, buildUpdates func(*models.ScheduledInteraction) models.ScheduledInteraction) error {
	if err := s.ledger.Load(); err != nil {
		return fmt.Errorf("%s interaction %s: %w", verb, id, err)
	}

	existing, err := s.ledger.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%s interaction %s: %w", verb, id, err)
	}

	updates := buildUpdates(existing)
	if err := s.ledger.Merge(id, updates); err != nil {
		return fmt.Errorf("%s interaction %s: %w", verb, id, err)
	}
	if err := s.ledger.Save(); err != nil {
		return fmt.Errorf("%s interaction %s: %w", verb, id, err)
	}

	return s.recomputeToday()
}

// recomputeToday rebuilds the today view from the full ledger.
func (s *interactionScheduler) recomputeToday() error {
	all, err := s.ledger.GetAll()
	if err != nil {
		return fmt.Errorf("recomputing today view: %w", err)
	}
	today := FormatDate(s.now())
	view := make([]models.ScheduledInteraction, 0)
	for _, interaction := range all {
		if interaction.ScheduledDate == today {
			view = append(view, interaction)
		}
	}
	s.today = view
	return nil
}

// Today returns the current today view. The view reflects the ledger as of
// the last mutation; call All for an authoritative read.
func (s *interactionScheduler) Today() []models.ScheduledInteraction {
	return s.today
}

// All returns every ledger entry, sorted by scheduled date.
func (s *interactionScheduler) All() ([]models.ScheduledInteraction, error) {
	if err := s.ledger.Load(); err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	if err := s.recomputeToday(); err != nil {
		return nil, err
	}
	return s.ledger.GetAll()
}

// GenerateInteractions schedules one planned interaction per relationship.
// Lead time scales inversely with importance: the most important contacts
// are scheduled soonest.
func (s *interactionScheduler) GenerateInteractions() ([]models.ScheduledInteraction, error) {
	if err := s.rels.Load(); err != nil {
		return nil, fmt.Errorf("generating interactions: %w", err)
	}
	relationships, err := s.rels.GetAll()
	if err != nil {
		return nil, fmt.Errorf("generating interactions: %w", err)
	}

	var generated []models.ScheduledInteraction
	for _, rel := range relationships {
		daysToAdd := 7
		switch {
		case rel.Importance > 4:
			daysToAdd = 3
		case rel.Importance < 2:
			daysToAdd = 14
		}

		interaction := models.ScheduledInteraction{
			RelationshipID:     rel.ID,
			RelationshipName:   rel.Name,
			ScheduledDate:      FormatDate(s.now().AddDate(0, 0, daysToAdd)),
			SuggestedTimeSlots: []string{"10:00", "14:00", "18:00"},
			InteractionType:    models.TypeMessage,
			Duration:           15,
			Purpose:            fmt.Sprintf("Catch up with %s", rel.Name),
			PreparationNeeded:  rel.Importance > 3,
			PreparationNotes:   "Generated from your nurturing schedule",
			Status:             models.StatusPlanned,
			EnergyCost:         rel.Importance * 2,
		}
		if rel.Category == "professional" || rel.Category == "work contacts" {
			interaction.InteractionType = models.TypeCall
			interaction.Duration = 30
			interaction.Purpose = fmt.Sprintf("Check in with %s", rel.Name)
		}

		scheduled, err := s.Schedule(interaction)
		if err != nil {
			return nil, fmt.Errorf("generating interaction for %s: %w", rel.ID, err)
		}
		generated = append(generated, *scheduled)
	}

	return generated, nil
}

func (s *interactionScheduler) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, data) // best-effort
}

// prefixNotes places the lifecycle annotation ahead of any existing notes.
func prefixNotes(prefix, existing string) string {
	if existing == "" {
		return prefix
	}
	return prefix + "\n" + existing
}
