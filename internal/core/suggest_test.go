package core

import (
	"testing"

	"github.com/introware/nurture/internal/storage"
	"github.com/introware/nurture/pkg/models"
)

type engineFixture struct {
	engine *suggestionEngine
	store  storage.SuggestionManager
	ledger storage.InteractionManager
	freqs  storage.FrequencyManager
	rels   storage.RelationshipManager
}

func newEngineFixture(t *testing.T) engineFixture {
	t.Helper()
	dir := t.TempDir()

	store := storage.NewSuggestionManager(dir)
	ledger := storage.NewInteractionManager(dir)
	freqs := storage.NewFrequencyManager(dir)
	rels := storage.NewRelationshipManager(dir)
	for _, rel := range testRelationships() {
		if err := rels.Add(rel); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := rels.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tracker := NewFrequencyTracker(freqs, rels, staticDefaults{defaults: testDefaults()}, testResolver()).(*frequencyTracker)
	tracker.now = fixedClock

	scheduler := NewInteractionScheduler(ledger, rels, tracker, NewIDGenerator(dir, "INT", 5), nil).(*interactionScheduler)
	scheduler.now = fixedClock

	sugIDs := NewIDGenerator(dir, "SUG", 5)
	insIDs := NewIDGenerator(dir, "INS", 5)
	engine := NewSuggestionEngine(store, rels, tracker, scheduler, sugIDs, insIDs, nil, 3, "18:30").(*suggestionEngine)
	engine.now = fixedClock

	return engineFixture{engine: engine, store: store, ledger: ledger, freqs: freqs, rels: rels}
}

func (fx engineFixture) putFrequency(t *testing.T, freq models.RelationshipFrequency) {
	t.Helper()
	if err := fx.freqs.Put(freq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.freqs.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateSuggestions_PriorityScalesWithOverdueDays(t *testing.T) {
	tests := []struct {
		name          string
		nextScheduled string
		wantPriority  int
		wantDate      string
	}{
		{"ten days overdue", "2026-08-22", 1, "2026-09-02"},
		{"five days overdue", "2026-08-27", 2, "2026-09-03"},
		{"one day overdue", "2026-08-31", 3, "2026-09-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newEngineFixture(t)
			fx.putFrequency(t, models.RelationshipFrequency{
				RelationshipID:  "REL-00001",
				CategoryDefault: true,
				NextScheduled:   tt.nextScheduled,
			})

			generated, err := fx.engine.GenerateSuggestions()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(generated) != 1 {
				t.Fatalf("expected 1 suggestion, got %d", len(generated))
			}
			if generated[0].Priority != tt.wantPriority {
				t.Fatalf("expected priority %d, got %d", tt.wantPriority, generated[0].Priority)
			}
			if generated[0].SuggestedDate != tt.wantDate {
				t.Fatalf("expected date %s, got %s", tt.wantDate, generated[0].SuggestedDate)
			}
		})
	}
}

func TestGenerateSuggestions_ShapeFollowsImportance(t *testing.T) {
	fx := newEngineFixture(t)
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00001", // Ana, importance 5
		CategoryDefault: true,
		NextScheduled:   "2026-08-22",
	})
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00002", // Ben, importance 3
		CategoryDefault: true,
		NextScheduled:   "2026-08-22",
	})

	generated, err := fx.engine.GenerateSuggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(generated) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(generated))
	}

	byRel := make(map[string]models.ConnectionSuggestion)
	for _, s := range generated {
		byRel[s.RelationshipID] = s
	}

	ana := byRel["REL-00001"]
	if ana.InteractionType != models.TypeCall {
		t.Fatalf("high importance should suggest a call, got %s", ana.InteractionType)
	}
	if ana.EnergyLevelRequired != 10 {
		t.Fatalf("energy should clamp at 10, got %d", ana.EnergyLevelRequired)
	}
	if ana.ExpectedResponse != models.ResponseFast {
		t.Fatalf("expected fast response, got %s", ana.ExpectedResponse)
	}

	ben := byRel["REL-00002"]
	if ben.InteractionType != models.TypeMessage {
		t.Fatalf("mid importance should suggest a message, got %s", ben.InteractionType)
	}
	if ben.EnergyLevelRequired != 6 {
		t.Fatalf("expected energy 6, got %d", ben.EnergyLevelRequired)
	}
	if ben.ExpectedResponse != models.ResponseMedium {
		t.Fatalf("expected medium response, got %s", ben.ExpectedResponse)
	}
}

func TestGenerateSuggestions_SkipsCoveredAndCurrentRelationships(t *testing.T) {
	fx := newEngineFixture(t)
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00001",
		CategoryDefault: true,
		NextScheduled:   "2026-08-22", // overdue but already covered
	})
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00002",
		CategoryDefault: true,
		NextScheduled:   "2026-09-08", // not overdue
	})

	if err := fx.store.Add(models.ConnectionSuggestion{
		ID:             "SUG-00099",
		RelationshipID: "REL-00001",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.store.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	generated, err := fx.engine.GenerateSuggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(generated) != 0 {
		t.Fatalf("expected no new suggestions, got %d", len(generated))
	}
}

func TestApply_SchedulesInteractionAndRemovesSuggestion(t *testing.T) {
	fx := newEngineFixture(t)

	if err := fx.store.Add(models.ConnectionSuggestion{
		ID:                  "SUG-00001",
		RelationshipID:      "REL-00001",
		RelationshipName:    "Ana",
		SuggestedDate:       "2026-09-03",
		SuggestedTime:       "18:30",
		InteractionType:     models.TypeMeet,
		ReasonForSuggestion: "Ana is 10 days overdue for a check-in",
		EnergyLevelRequired: 8,
		Priority:            1,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.store.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scheduled, err := fx.engine.Apply("SUG-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scheduled == nil {
		t.Fatal("expected a scheduled interaction")
	}
	if scheduled.Status != models.StatusPlanned {
		t.Fatalf("expected planned, got %s", scheduled.Status)
	}
	// Meetings default to 90 minutes.
	if scheduled.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", scheduled.Duration)
	}
	if scheduled.ScheduledDate != "2026-09-03" {
		t.Fatalf("expected suggested date carried over, got %s", scheduled.ScheduledDate)
	}
	if !scheduled.PreparationNeeded {
		t.Fatal("energy above 3 needs preparation")
	}

	remaining, err := fx.engine.Suggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("applied suggestion should be removed, got %d", len(remaining))
	}
}

func TestApply_UnknownIDReturnsNil(t *testing.T) {
	fx := newEngineFixture(t)

	scheduled, err := fx.engine.Apply("SUG-99999")
	if err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if scheduled != nil {
		t.Fatalf("expected nil interaction, got %+v", scheduled)
	}
}

func TestSkipSuggestion(t *testing.T) {
	fx := newEngineFixture(t)

	if err := fx.store.Add(models.ConnectionSuggestion{
		ID:             "SUG-00001",
		RelationshipID: "REL-00001",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.store.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := fx.engine.SkipSuggestion("SUG-00001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	remaining, err := fx.engine.Suggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected suggestion removed, got %d", len(remaining))
	}

	// No ledger entry was created.
	all, err := fx.ledger.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("skip must not touch the ledger, got %d entries", len(all))
	}
}

func TestSkipSuggestion_UnknownIDIsNoOp(t *testing.T) {
	fx := newEngineFixture(t)
	if err := fx.engine.SkipSuggestion("SUG-99999"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestInsights_DerivedFromOverdueAndLifeEvents(t *testing.T) {
	fx := newEngineFixture(t)

	// Ana is 20 days overdue with importance 5 and a birthday in 10 days.
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00001",
		CategoryDefault: true,
		LastInteraction: "2026-08-05",
		NextScheduled:   "2026-08-12",
	})
	rel, err := fx.rels.Get("REL-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel.LifeEvents = []models.LifeEvent{
		{RelationshipID: "REL-00001", EventType: "birthday", Date: "2026-09-11"},
	}
	if err := fx.rels.Update("REL-00001", *rel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.rels.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insights, err := fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 3 {
		t.Fatalf("expected gap, health, and event insights, got %d", len(insights))
	}

	byType := make(map[models.InsightType]models.Insight)
	for _, insight := range insights {
		if !insight.IsNew {
			t.Fatalf("fresh insight %s should be new", insight.ID)
		}
		byType[insight.Type] = insight
	}

	gap, ok := byType[models.InsightConnectionGap]
	if !ok {
		t.Fatal("missing connection gap insight")
	}
	if gap.Severity != models.InsightSeverityHigh {
		t.Fatalf("20 days overdue should be high severity, got %s", gap.Severity)
	}

	if _, ok := byType[models.InsightRelationshipHealth]; !ok {
		t.Fatal("missing relationship health insight for high-importance contact")
	}
	if _, ok := byType[models.InsightConversationSuggestion]; !ok {
		t.Fatal("missing conversation suggestion for upcoming life event")
	}
}

func TestInsights_SeverityThresholds(t *testing.T) {
	tests := []struct {
		name          string
		nextScheduled string
		want          models.InsightSeverity
	}{
		{"eight days overdue is medium", "2026-08-24", models.InsightSeverityMedium},
		{"seven days overdue is low", "2026-08-25", models.InsightSeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newEngineFixture(t)
			fx.putFrequency(t, models.RelationshipFrequency{
				RelationshipID:  "REL-00002", // Ben, importance 3: gap insight only
				CategoryDefault: true,
				NextScheduled:   tt.nextScheduled,
			})

			insights, err := fx.engine.Insights()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(insights) != 1 {
				t.Fatalf("expected 1 insight, got %d", len(insights))
			}
			if insights[0].Severity != tt.want {
				t.Fatalf("expected %s severity, got %s", tt.want, insights[0].Severity)
			}
		})
	}
}

func TestMarkInsightRead(t *testing.T) {
	fx := newEngineFixture(t)
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00001",
		CategoryDefault: true,
		NextScheduled:   "2026-08-22",
	})

	insights, err := fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) == 0 {
		t.Fatal("expected insights")
	}

	if err := fx.engine.MarkInsightRead(insights[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	insights, err = fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insights[0].IsNew {
		t.Fatal("insight should be marked read")
	}
	if len(insights) > 1 && !insights[1].IsNew {
		t.Fatal("other insights should stay new")
	}

	if err := fx.engine.MarkAllInsightsRead(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	insights, err = fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, insight := range insights {
		if insight.IsNew {
			t.Fatalf("insight %s should be read", insight.ID)
		}
	}
}

func TestMarkInsightRead_UnknownIDIsNoOp(t *testing.T) {
	fx := newEngineFixture(t)
	if err := fx.engine.MarkInsightRead("INS-99999"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestTakeActionOnInsight_ConnectionGapCreatesSuggestion(t *testing.T) {
	fx := newEngineFixture(t)
	fx.putFrequency(t, models.RelationshipFrequency{
		RelationshipID:  "REL-00002", // gap insight only
		CategoryDefault: true,
		NextScheduled:   "2026-08-22",
	})

	insights, err := fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 || insights[0].Type != models.InsightConnectionGap {
		t.Fatalf("expected a single gap insight, got %+v", insights)
	}

	if err := fx.engine.TakeActionOnInsight(insights[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insights, _ = fx.engine.Insights()
	if insights[0].IsNew {
		t.Fatal("actioned insight should be marked read")
	}

	suggestions, err := fx.engine.Suggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 synthesized suggestion, got %d", len(suggestions))
	}
	got := suggestions[0]
	if got.InteractionType != models.TypeCall {
		t.Fatalf("expected call, got %s", got.InteractionType)
	}
	if got.EnergyLevelRequired != 4 || got.Priority != 3 {
		t.Fatalf("unexpected shape: energy %d priority %d", got.EnergyLevelRequired, got.Priority)
	}
	if got.SuggestedDate != "2026-09-04" {
		t.Fatalf("expected lead of 3 days, got %s", got.SuggestedDate)
	}
	if got.SuggestedTime != "18:30" {
		t.Fatalf("expected default time slot, got %s", got.SuggestedTime)
	}
}

func TestTakeActionOnInsight_OtherTypesOnlyMarkRead(t *testing.T) {
	fx := newEngineFixture(t)

	// A life event within the window yields a conversation suggestion insight.
	rel, err := fx.rels.Get("REL-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel.LifeEvents = []models.LifeEvent{
		{RelationshipID: "REL-00001", EventType: "birthday", Date: "2026-09-11"},
	}
	if err := fx.rels.Update("REL-00001", *rel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.rels.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	insights, err := fx.engine.Insights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 || insights[0].Type != models.InsightConversationSuggestion {
		t.Fatalf("expected a single event insight, got %+v", insights)
	}

	if err := fx.engine.TakeActionOnInsight(insights[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	suggestions, err := fx.engine.Suggestions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("non-gap insights must not synthesize suggestions, got %d", len(suggestions))
	}
}

func TestTakeActionOnInsight_UnknownIDIsNoOp(t *testing.T) {
	fx := newEngineFixture(t)
	if err := fx.engine.TakeActionOnInsight("INS-99999"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}
