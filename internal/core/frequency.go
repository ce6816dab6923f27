package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/introware/nurture/internal/storage"
	"github.com/introware/nurture/pkg/models"
)

// FrequencyStore is the subset of storage.FrequencyManager that the tracker
// needs. Defining it here keeps core testable against small fakes.
type FrequencyStore interface {
	Put(freq models.RelationshipFrequency) error
	Get(relationshipID string) (*models.RelationshipFrequency, error)
	GetAll() ([]models.RelationshipFrequency, error)
	Load() error
	Save() error
}

// RelationshipReader is the subset of storage.RelationshipManager that core
// services need.
type RelationshipReader interface {
	Get(id string) (*models.Relationship, error)
	GetAll() ([]models.Relationship, error)
	Load() error
}

// CategoryDefaultsProvider supplies the per-category fallback cadences,
// typically from the configuration file.
type CategoryDefaultsProvider interface {
	CategoryDefaults() ([]models.CategoryDefault, error)
}

// FrequencyTracker maintains the per-relationship cadence records: last
// interaction, next scheduled date, and overdue state.
//
// Operations referencing an unknown relationship are silent no-ops. The
// internal stores report a not-found error, but this tracker swallows it at
// the public boundary: the scheduler is advisory, not a system of record,
// and callers were never required to handle reference misses.
type FrequencyTracker interface {
	EnsureTracked(relationshipID string) error
	SetCustomCadence(relationshipID string, custom models.CustomFrequency) error
	UseCategoryDefault(relationshipID string) error
	UpdateAfterInteraction(interaction models.ScheduledInteraction, completedDate string) error
	RefreshOverdue() error
	Frequencies() ([]models.RelationshipFrequency, error)
}

type frequencyTracker struct {
	freqs    FrequencyStore
	rels     RelationshipReader
	defaults CategoryDefaultsProvider
	resolver CadenceResolver
	now      func() time.Time
}

// NewFrequencyTracker creates a FrequencyTracker over the given stores.
func NewFrequencyTracker(freqs FrequencyStore, rels RelationshipReader, defaults CategoryDefaultsProvider, resolver CadenceResolver) FrequencyTracker {
	return &frequencyTracker{
		freqs:    freqs,
		rels:     rels,
		defaults: defaults,
		resolver: resolver,
		now:      time.Now,
	}
}

// EnsureTracked creates a category-default frequency record for the
// relationship if none exists yet. Existing records are left untouched.
func (t *frequencyTracker) EnsureTracked(relationshipID string) error {
	if err := t.freqs.Load(); err != nil {
		return fmt.Errorf("ensuring cadence for %s: %w", relationshipID, err)
	}
	if _, err := t.freqs.Get(relationshipID); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("ensuring cadence for %s: %w", relationshipID, err)
	}

	freq := models.RelationshipFrequency{
		RelationshipID:  relationshipID,
		CategoryDefault: true,
		LastInteraction: FormatDate(t.now()),
	}

	next, err := t.resolveNext(freq)
	if err != nil {
		return fmt.Errorf("ensuring cadence for %s: %w", relationshipID, err)
	}
	freq.NextScheduled = next

	if err := t.freqs.Put(freq); err != nil {
		return fmt.Errorf("ensuring cadence for %s: %w", relationshipID, err)
	}
	return t.freqs.Save()
}

// SetCustomCadence switches the relationship to a custom cadence and
// recomputes its next scheduled date. Unknown relationships are a no-op.
func (t *frequencyTracker) SetCustomCadence(relationshipID string, custom models.CustomFrequency) error {
	return t.mutate(relationshipID, func(freq *models.RelationshipFrequency) {
		freq.CategoryDefault = false
		freq.CustomFrequency = &custom
	})
}

// UseCategoryDefault reverts the relationship to its category's default
// cadence and recomputes its next scheduled date. Unknown relationships
// are a no-op.
func (t *frequencyTracker) UseCategoryDefault(relationshipID string) error {
	return t.mutate(relationshipID, func(freq *models.RelationshipFrequency) {
		freq.CategoryDefault = true
		freq.CustomFrequency = nil
	})
}

// UpdateAfterInteraction records a completed interaction: lastInteraction
// moves to the completion date, nextScheduled is recomputed from today, and
// the overdue flags reset. An interaction referencing an unknown
// relationship is a no-op.
func (t *frequencyTracker) UpdateAfterInteraction(interaction models.ScheduledInteraction, completedDate string) error {
	if interaction.RelationshipID == "" {
		return nil
	}
	return t.mutate(interaction.RelationshipID, func(freq *models.RelationshipFrequency) {
		freq.LastInteraction = completedDate
		freq.IsOverdue = false
		freq.OverdueDays = 0
	})
}

// mutate loads the record, applies fn, recomputes nextScheduled, and saves.
// A missing record is swallowed per the tracker's advisory contract.
func (t *frequencyTracker) mutate(relationshipID string, fn func(*models.RelationshipFrequency)) error {
	if err := t.freqs.Load(); err != nil {
		return fmt.Errorf("updating cadence for %s: %w", relationshipID, err)
	}

	freq, err := t.freqs.Get(relationshipID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("updating cadence for %s: %w", relationshipID, err)
	}

	fn(freq)

	next, err := t.resolveNext(*freq)
	if err != nil {
		return fmt.Errorf("updating cadence for %s: %w", relationshipID, err)
	}
	freq.NextScheduled = next

	if err := t.freqs.Put(*freq); err != nil {
		return fmt.Errorf("updating cadence for %s: %w", relationshipID, err)
	}
	return t.freqs.Save()
}

func (t *frequencyTracker) resolveNext(freq models.RelationshipFrequency) (string, error) {
	if err := t.rels.Load(); err != nil {
		return "", fmt.Errorf("loading relationships: %w", err)
	}
	relationships, err := t.rels.GetAll()
	if err != nil {
		return "", fmt.Errorf("listing relationships: %w", err)
	}
	defaults, err := t.defaults.CategoryDefaults()
	if err != nil {
		return "", fmt.Errorf("loading category defaults: %w", err)
	}
	return t.resolver.ComputeNextDate(freq, relationships, defaults), nil
}

// RefreshOverdue recomputes isOverdue and overdueDays for every record
// against today's date. A record is overdue when its next scheduled date
// has passed; a record due today is not overdue.
func (t *frequencyTracker) RefreshOverdue() error {
	if err := t.freqs.Load(); err != nil {
		return fmt.Errorf("refreshing overdue state: %w", err)
	}
	freqs, err := t.freqs.GetAll()
	if err != nil {
		return fmt.Errorf("refreshing overdue state: %w", err)
	}

	today := truncateToDay(t.now())
	for _, freq := range freqs {
		next, err := ParseDate(freq.NextScheduled)
		if err != nil {
			return fmt.Errorf("refreshing overdue state for %s: %w", freq.RelationshipID, err)
		}

		if next.Before(today) {
			freq.IsOverdue = true
			freq.OverdueDays = daysBetween(next, today)
		} else {
			freq.IsOverdue = false
			freq.OverdueDays = 0
		}

		if err := t.freqs.Put(freq); err != nil {
			return fmt.Errorf("refreshing overdue state for %s: %w", freq.RelationshipID, err)
		}
	}
	return t.freqs.Save()
}

// Frequencies returns the current frequency records.
func (t *frequencyTracker) Frequencies() ([]models.RelationshipFrequency, error) {
	if err := t.freqs.Load(); err != nil {
		return nil, fmt.Errorf("listing frequencies: %w", err)
	}
	return t.freqs.GetAll()
}
