package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/introware/nurture/internal/storage"
	"github.com/introware/nurture/pkg/models"
)

// SuggestionStore is the subset of storage.SuggestionManager that the
// engine needs.
type SuggestionStore interface {
	Add(suggestion models.ConnectionSuggestion) error
	Remove(id string) error
	Get(id string) (*models.ConnectionSuggestion, error)
	GetAll() ([]models.ConnectionSuggestion, error)
	Load() error
	Save() error
}

// SuggestionEngine derives connection suggestions and insights from cadence
// gaps, and converts them into ledger entries when the user acts on them.
//
// Insight read-state is session-local: insights are regenerated from the
// current frequency records each session, so persistence would only
// preserve stale observations.
type SuggestionEngine interface {
	GenerateSuggestions() ([]models.ConnectionSuggestion, error)
	Suggestions() ([]models.ConnectionSuggestion, error)
	Apply(id string) (*models.ScheduledInteraction, error)
	SkipSuggestion(id string) error
	Insights() ([]models.Insight, error)
	MarkInsightRead(id string) error
	MarkAllInsightsRead() error
	TakeActionOnInsight(id string) error
}

type suggestionEngine struct {
	store     SuggestionStore
	rels      RelationshipReader
	tracker   FrequencyTracker
	scheduler InteractionScheduler
	sugIDs    IDGenerator
	insIDs    IDGenerator
	events    EventLogger // may be nil
	leadDays  int
	timeSlot  string
	now       func() time.Time

	insights []models.Insight
}

// NewSuggestionEngine creates a SuggestionEngine. leadDays and timeSlot
// control the date and time of suggestions synthesized from insights.
func NewSuggestionEngine(store SuggestionStore, rels RelationshipReader, tracker FrequencyTracker, scheduler InteractionScheduler, sugIDs, insIDs IDGenerator, events EventLogger, leadDays int, timeSlot string) SuggestionEngine {
	if leadDays <= 0 {
		leadDays = 3
	}
	if timeSlot == "" {
		timeSlot = "18:30"
	}
	return &suggestionEngine{
		store:     store,
		rels:      rels,
		tracker:   tracker,
		scheduler: scheduler,
		sugIDs:    sugIDs,
		insIDs:    insIDs,
		events:    events,
		leadDays:  leadDays,
		timeSlot:  timeSlot,
		now:       time.Now,
	}
}

// GenerateSuggestions creates one suggestion per overdue relationship that
// does not already have an active suggestion. Priority and date scale with
// how far overdue the relationship is.
func (e *suggestionEngine) GenerateSuggestions() ([]models.ConnectionSuggestion, error) {
	if err := e.tracker.RefreshOverdue(); err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	frequencies, err := e.tracker.Frequencies()
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}

	if err := e.store.Load(); err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	existing, err := e.store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	covered := make(map[string]bool, len(existing))
	for _, s := range existing {
		covered[s.RelationshipID] = true
	}

	if err := e.rels.Load(); err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}

	var generated []models.ConnectionSuggestion
	for _, freq := range frequencies {
		if !freq.IsOverdue || covered[freq.RelationshipID] {
			continue
		}
		rel, err := e.rels.Get(freq.RelationshipID)
		if err != nil {
			continue // orphaned frequency record
		}

		suggestion, err := e.buildOverdueSuggestion(*rel, freq)
		if err != nil {
			return nil, fmt.Errorf("generating suggestion for %s: %w", freq.RelationshipID, err)
		}
		if err := e.store.Add(suggestion); err != nil {
			return nil, fmt.Errorf("generating suggestion for %s: %w", freq.RelationshipID, err)
		}
		generated = append(generated, suggestion)
	}

	if err := e.store.Save(); err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	return generated, nil
}

func (e *suggestionEngine) buildOverdueSuggestion(rel models.Relationship, freq models.RelationshipFrequency) (models.ConnectionSuggestion, error) {
	id, err := e.sugIDs.GenerateID()
	if err != nil {
		return models.ConnectionSuggestion{}, err
	}

	priority := 3
	leadDays := e.leadDays
	switch {
	case freq.OverdueDays >= 7:
		priority = 1
		leadDays = 1
	case freq.OverdueDays >= 3:
		priority = 2
		leadDays = 2
	}

	interactionType := models.TypeMessage
	if rel.Importance >= 4 {
		interactionType = models.TypeCall
	}

	energy := rel.Importance * 2
	if energy > 10 {
		energy = 10
	}
	if energy < 1 {
		energy = 1
	}

	response := models.ResponseSlow
	switch {
	case rel.Importance >= 4:
		response = models.ResponseFast
	case rel.Importance >= 2:
		response = models.ResponseMedium
	}

	return models.ConnectionSuggestion{
		ID:                  id,
		RelationshipID:      rel.ID,
		RelationshipName:    rel.Name,
		Suggested:           true,
		SuggestedDate:       FormatDate(e.now().AddDate(0, 0, leadDays)),
		SuggestedTime:       e.timeSlot,
		InteractionType:     interactionType,
		ReasonForSuggestion: fmt.Sprintf("%s is %d days overdue for a check-in", rel.Name, freq.OverdueDays),
		EnergyLevelRequired: energy,
		Priority:            priority,
		ExpectedResponse:    response,
	}, nil
}

// Suggestions returns the active suggestion list, highest priority first.
func (e *suggestionEngine) Suggestions() ([]models.ConnectionSuggestion, error) {
	if err := e.store.Load(); err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}
	return e.store.GetAll()
}

// Apply converts a suggestion into a planned ledger entry and removes it
// from the active list. Duration follows the interaction type: meet 90,
// call 30, video 45, anything else 15 minutes. Unknown IDs are a no-op.
func (e *suggestionEngine) Apply(id string) (*models.ScheduledInteraction, error) {
	if err := e.store.Load(); err != nil {
		return nil, fmt.Errorf("applying suggestion %s: %w", id, err)
	}

	suggestion, err := e.store.Get(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("applying suggestion %s: %w", id, err)
	}

	interaction := models.ScheduledInteraction{
		RelationshipID:     suggestion.RelationshipID,
		RelationshipName:   suggestion.RelationshipName,
		ScheduledDate:      suggestion.SuggestedDate,
		SuggestedTimeSlots: []string{suggestion.SuggestedTime},
		InteractionType:    suggestion.InteractionType,
		Duration:           durationFor(suggestion.InteractionType),
		Purpose:            "Suggested connection",
		PreparationNeeded:  suggestion.EnergyLevelRequired > 3,
		PreparationNotes:   suggestion.ReasonForSuggestion,
		Status:             models.StatusPlanned,
		EnergyCost:         suggestion.EnergyLevelRequired,
	}

	scheduled, err := e.scheduler.Schedule(interaction)
	if err != nil {
		return nil, fmt.Errorf("applying suggestion %s: %w", id, err)
	}

	if err := e.store.Remove(id); err != nil {
		return nil, fmt.Errorf("applying suggestion %s: %w", id, err)
	}
	if err := e.store.Save(); err != nil {
		return nil, fmt.Errorf("applying suggestion %s: %w", id, err)
	}

	e.logEvent("suggestion.applied", map[string]any{
		"suggestion_id":   id,
		"interaction_id":  scheduled.ID,
		"relationship_id": scheduled.RelationshipID,
	})

	return scheduled, nil
}

// durationFor maps an interaction type to its default duration in minutes.
func durationFor(t models.InteractionType) int {
	switch t {
	case models.TypeMeet:
		return 90
	case models.TypeCall:
		return 30
	case models.TypeVideo:
		return 45
	default:
		return 15
	}
}

// SkipSuggestion removes a suggestion without touching the ledger.
// Unknown IDs are a no-op.
func (e *suggestionEngine) SkipSuggestion(id string) error {
	if err := e.store.Load(); err != nil {
		return fmt.Errorf("skipping suggestion %s: %w", id, err)
	}
	if err := e.store.Remove(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("skipping suggestion %s: %w", id, err)
	}
	if err := e.store.Save(); err != nil {
		return fmt.Errorf("skipping suggestion %s: %w", id, err)
	}

	e.logEvent("suggestion.skipped", map[string]any{"suggestion_id": id})
	return nil
}

// Insights returns the session's insight list, deriving it from the
// current frequency records on first call.
func (e *suggestionEngine) Insights() ([]models.Insight, error) {
	if e.insights == nil {
		if err := e.deriveInsights(); err != nil {
			return nil, err
		}
	}
	return e.insights, nil
}

// deriveInsights builds insights from overdue records, importance tension,
// and upcoming life events.
func (e *suggestionEngine) deriveInsights() error {
	if err := e.tracker.RefreshOverdue(); err != nil {
		return fmt.Errorf("deriving insights: %w", err)
	}
	frequencies, err := e.tracker.Frequencies()
	if err != nil {
		return fmt.Errorf("deriving insights: %w", err)
	}
	if err := e.rels.Load(); err != nil {
		return fmt.Errorf("deriving insights: %w", err)
	}
	relationships, err := e.rels.GetAll()
	if err != nil {
		return fmt.Errorf("deriving insights: %w", err)
	}

	byID := make(map[string]models.Relationship, len(relationships))
	for _, rel := range relationships {
		byID[rel.ID] = rel
	}

	today := FormatDate(e.now())
	insights := make([]models.Insight, 0)

	for _, freq := range frequencies {
		rel, ok := byID[freq.RelationshipID]
		if !ok || !freq.IsOverdue {
			continue
		}

		severity := models.InsightSeverityLow
		switch {
		case freq.OverdueDays > 14:
			severity = models.InsightSeverityHigh
		case freq.OverdueDays > 7:
			severity = models.InsightSeverityMedium
		}

		gap, err := e.newInsight(models.Insight{
			RelationshipID:   rel.ID,
			RelationshipName: rel.Name,
			Title:            fmt.Sprintf("Connection gap with %s", rel.Name),
			Description:      fmt.Sprintf("No completed interaction since %s; the next check-in was due %d days ago.", freq.LastInteraction, freq.OverdueDays),
			Recommendation:   fmt.Sprintf("Reach out to %s this week to close the gap.", rel.Name),
			Type:             models.InsightConnectionGap,
			Severity:         severity,
			DateGenerated:    today,
		})
		if err != nil {
			return err
		}
		insights = append(insights, gap)

		if rel.Importance >= 4 {
			health, err := e.newInsight(models.Insight{
				RelationshipID:   rel.ID,
				RelationshipName: rel.Name,
				Title:            fmt.Sprintf("%s is a priority relationship", rel.Name),
				Description:      fmt.Sprintf("%s has importance %d but is currently overdue.", rel.Name, rel.Importance),
				Recommendation:   "Consider a shorter cadence for this relationship.",
				Type:             models.InsightRelationshipHealth,
				Severity:         models.InsightSeverityHigh,
				DateGenerated:    today,
			})
			if err != nil {
				return err
			}
			insights = append(insights, health)
		}
	}

	for _, rel := range relationships {
		for _, event := range rel.LifeEvents {
			eventDate, err := ParseDate(event.Date)
			if err != nil {
				continue
			}
			daysUntil := daysBetween(e.now(), eventDate)
			if daysUntil < 0 || daysUntil > 14 {
				continue
			}
			topic, err := e.newInsight(models.Insight{
				RelationshipID:   rel.ID,
				RelationshipName: rel.Name,
				Title:            fmt.Sprintf("Upcoming %s for %s", event.EventType, rel.Name),
				Description:      fmt.Sprintf("%s has a %s on %s.", rel.Name, event.EventType, event.Date),
				Recommendation:   fmt.Sprintf("Mention the %s next time you talk.", event.EventType),
				Type:             models.InsightConversationSuggestion,
				Severity:         models.InsightSeverityLow,
				DateGenerated:    today,
			})
			if err != nil {
				return err
			}
			insights = append(insights, topic)
		}
	}

	e.insights = insights
	return nil
}

func (e *suggestionEngine) newInsight(insight models.Insight) (models.Insight, error) {
	id, err := e.insIDs.GenerateID()
	if err != nil {
		return models.Insight{}, fmt.Errorf("generating insight ID: %w", err)
	}
	insight.ID = id
	insight.IsNew = true
	return insight, nil
}

// MarkInsightRead clears the IsNew flag on the matching insight.
// Unknown IDs are a no-op.
func (e *suggestionEngine) MarkInsightRead(id string) error {
	for i := range e.insights {
		if e.insights[i].ID == id {
			e.insights[i].IsNew = false
			return nil
		}
	}
	return nil
}

// MarkAllInsightsRead clears the IsNew flag on every insight.
func (e *suggestionEngine) MarkAllInsightsRead() error {
	for i := range e.insights {
		e.insights[i].IsNew = false
	}
	return nil
}

// TakeActionOnInsight marks the insight read and, for connection_gap
// insights only, synthesizes a suggestion dated leadDays out with the
// default time slot, a call, energy 4, and priority 3. Other insight types
// are marked read without a follow-on action. Unknown IDs are a no-op.
func (e *suggestionEngine) TakeActionOnInsight(id string) error {
	var insight *models.Insight
	for i := range e.insights {
		if e.insights[i].ID == id {
			insight = &e.insights[i]
			break
		}
	}
	if insight == nil {
		return nil
	}

	if err := e.MarkInsightRead(id); err != nil {
		return err
	}

	if insight.Type != models.InsightConnectionGap {
		return nil
	}

	sugID, err := e.sugIDs.GenerateID()
	if err != nil {
		return fmt.Errorf("acting on insight %s: %w", id, err)
	}

	suggestion := models.ConnectionSuggestion{
		ID:                  sugID,
		RelationshipID:      insight.RelationshipID,
		RelationshipName:    insight.RelationshipName,
		Suggested:           true,
		SuggestedDate:       FormatDate(e.now().AddDate(0, 0, e.leadDays)),
		SuggestedTime:       e.timeSlot,
		InteractionType:     models.TypeCall,
		ReasonForSuggestion: insight.Recommendation,
		EnergyLevelRequired: 4,
		Priority:            3,
		ExpectedResponse:    models.ResponseFast,
	}

	if err := e.store.Load(); err != nil {
		return fmt.Errorf("acting on insight %s: %w", id, err)
	}
	if err := e.store.Add(suggestion); err != nil {
		return fmt.Errorf("acting on insight %s: %w", id, err)
	}
	if err := e.store.Save(); err != nil {
		return fmt.Errorf("acting on insight %s: %w", id, err)
	}

	e.logEvent("insight.actioned", map[string]any{
		"insight_id":    id,
		"suggestion_id": sugID,
		"type":          string(insight.Type),
	})
	return nil
}

func (e *suggestionEngine) logEvent(eventType string, data map[string]any) {
	if e.events == nil {
		return
	}
	_ = e.events.LogEvent(eventType, data)
}
