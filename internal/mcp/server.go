// Package mcp provides an MCP (Model Context Protocol) server that exposes
// nurture functionality as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/introware/nurture/internal/core"
	"github.com/introware/nurture/internal/observability"
	"github.com/introware/nurture/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps nurture services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	scheduler   core.InteractionScheduler
	engine      core.SuggestionEngine
	statsCalc   core.StatsCalculator
	metricsCalc observability.MetricsCalculator
	reminders   observability.ReminderEngine
}

// NewServer creates a new MCP server with the given nurture service
// dependencies. metricsCalc and reminders may be nil if observability is
// disabled.
func NewServer(scheduler core.InteractionScheduler, engine core.SuggestionEngine, statsCalc core.StatsCalculator, metricsCalc observability.MetricsCalculator, reminders observability.ReminderEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		scheduler:   scheduler,
		engine:      engine,
		statsCalc:   statsCalc,
		metricsCalc: metricsCalc,
		reminders:   reminders,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "nurture", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on the given transport, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getStatsInput struct{}

type statsOutput struct {
	PlannedToday         int `json:"planned_today"`
	CompletedToday       int `json:"completed_today"`
	PlannedThisWeek      int `json:"planned_this_week"`
	CompletedThisWeek    int `json:"completed_this_week"`
	OverdueCount         int `json:"overdue_count"`
	UpcomingEvents       int `json:"upcoming_events"`
	HealthyRelationships int `json:"healthy_relationships"`
	NeedsAttentionCount  int `json:"needs_attention_count"`
}

type listInteractionsInput struct {
	TodayOnly bool `json:"today_only,omitempty" jsonschema:"return only interactions scheduled for today"`
}

type interactionOutput struct {
	ID               string `json:"id"`
	RelationshipID   string `json:"relationship_id"`
	RelationshipName string `json:"relationship_name"`
	ScheduledDate    string `json:"scheduled_date"`
	InteractionType  string `json:"interaction_type"`
	Duration         int    `json:"duration"`
	Purpose          string `json:"purpose,omitempty"`
	Status           string `json:"status"`
	CompletedDate    string `json:"completed_date,omitempty"`
	EnergyCost       int    `json:"energy_cost"`
}

type listInteractionsOutput struct {
	Interactions []interactionOutput `json:"interactions"`
	Count        int                 `json:"count"`
}

type scheduleInteractionInput struct {
	RelationshipID string `json:"relationship_id" jsonschema:"required,the relationship identifier (e.g. REL-00003)"`
	Date           string `json:"date" jsonschema:"required,the scheduled date in YYYY-MM-DD format"`
	Type           string `json:"type,omitempty" jsonschema:"interaction channel (call, message, meet, email, video, other). Defaults to message."`
	Purpose        string `json:"purpose,omitempty" jsonschema:"what the interaction is for"`
}

type completeInteractionInput struct {
	InteractionID string `json:"interaction_id" jsonschema:"required,the interaction identifier (e.g. INT-00012)"`
	Notes         string `json:"notes,omitempty" jsonschema:"notes to record against the interaction"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type listSuggestionsInput struct{}

type suggestionOutput struct {
	ID               string `json:"id"`
	RelationshipID   string `json:"relationship_id"`
	RelationshipName string `json:"relationship_name"`
	SuggestedDate    string `json:"suggested_date"`
	SuggestedTime    string `json:"suggested_time"`
	InteractionType  string `json:"interaction_type"`
	Reason           string `json:"reason"`
	Priority         int    `json:"priority"`
}

type listSuggestionsOutput struct {
	Suggestions []suggestionOutput `json:"suggestions"`
	Count       int                `json:"count"`
}

type applySuggestionInput struct {
	SuggestionID string `json:"suggestion_id" jsonschema:"required,the suggestion identifier (e.g. SUG-00004)"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	CheckinsScheduled  int            `json:"checkins_scheduled"`
	CheckinsCompleted  int            `json:"checkins_completed"`
	CheckinsSkipped    int            `json:"checkins_skipped"`
	CompletedByType    map[string]int `json:"completed_by_type"`
	SuggestionsApplied int            `json:"suggestions_applied"`
	SuggestionsSkipped int            `json:"suggestions_skipped"`
	EventCount         int            `json:"event_count"`
	OldestEvent        string         `json:"oldest_event,omitempty"`
	NewestEvent        string         `json:"newest_event,omitempty"`
}

type getRemindersInput struct{}

type reminderOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getRemindersOutput struct {
	Reminders []reminderOutput `json:"reminders"`
	Count     int              `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get the nurturing dashboard statistics: planned and completed counts for today and this week, overdue and healthy relationship counts, and upcoming life events.",
	}, s.handleGetStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_interactions",
		Description: "List scheduled interactions, optionally restricted to today. Returns an array of interaction summaries.",
	}, s.handleListInteractions)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "schedule_interaction",
		Description: "Schedule a new interaction with a relationship on a given date. Valid types: call, message, meet, email, video, other.",
	}, s.handleScheduleInteraction)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_interaction",
		Description: "Mark a scheduled interaction as completed, recording optional notes and updating the relationship's cadence.",
	}, s.handleCompleteInteraction)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_suggestions",
		Description: "List pending connection suggestions, ordered by priority.",
	}, s.handleListSuggestions)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "apply_suggestion",
		Description: "Convert a pending suggestion into a scheduled interaction and remove it from the suggestion list.",
	}, s.handleApplySuggestion)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated metrics from the event log, including scheduled, completed, and skipped check-in counts.",
	}, s.handleGetMetrics)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_reminders",
		Description: "Evaluate and return active reminders (long-overdue relationships, overloaded days, stale suggestions).",
	}, s.handleGetReminders)
}

// --- Tool handlers ---

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, _ getStatsInput) (*gomcp.CallToolResult, statsOutput, error) {
	stats, err := s.statsCalc.Calculate()
	if err != nil {
		return errorResult(fmt.Sprintf("calculating stats: %s", err)), statsOutput{}, nil
	}

	out := statsOutput{
		PlannedToday:         stats.PlannedToday,
		CompletedToday:       stats.CompletedToday,
		PlannedThisWeek:      stats.PlannedThisWeek,
		CompletedThisWeek:    stats.CompletedThisWeek,
		OverdueCount:         stats.OverdueCount,
		UpcomingEvents:       stats.UpcomingEvents,
		HealthyRelationships: stats.HealthyRelationships,
		NeedsAttentionCount:  stats.NeedsAttentionCount,
	}
	return nil, out, nil
}

func (s *Server) handleListInteractions(_ context.Context, _ *gomcp.CallToolRequest, input listInteractionsInput) (*gomcp.CallToolResult, listInteractionsOutput, error) {
	interactions, err := s.scheduler.All()
	if err != nil {
		return errorResult(fmt.Sprintf("listing interactions: %s", err)), listInteractionsOutput{}, nil
	}
	if input.TodayOnly {
		interactions = s.scheduler.Today()
	}

	out := listInteractionsOutput{
		Interactions: make([]interactionOutput, len(interactions)),
		Count:        len(interactions),
	}
	for i, interaction := range interactions {
		out.Interactions[i] = interactionToOutput(interaction)
	}

	return nil, out, nil
}

func (s *Server) handleScheduleInteraction(_ context.Context, _ *gomcp.CallToolRequest, input scheduleInteractionInput) (*gomcp.CallToolResult, interactionOutput, error) {
	if input.RelationshipID == "" {
		return errorResult("relationship_id is required"), interactionOutput{}, nil
	}
	if input.Date == "" {
		return errorResult("date is required"), interactionOutput{}, nil
	}

	interactionType := models.TypeMessage
	if input.Type != "" {
		validTypes := map[string]bool{
			"call": true, "message": true, "meet": true,
			"email": true, "video": true, "other": true,
		}
		if !validTypes[input.Type] {
			return errorResult(fmt.Sprintf("invalid type %q: must be one of call, message, meet, email, video, other", input.Type)), interactionOutput{}, nil
		}
		interactionType = models.InteractionType(input.Type)
	}

	scheduled, err := s.scheduler.Schedule(models.ScheduledInteraction{
		RelationshipID:  input.RelationshipID,
		ScheduledDate:   input.Date,
		InteractionType: interactionType,
		Purpose:         input.Purpose,
		Status:          models.StatusPlanned,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("scheduling interaction: %s", err)), interactionOutput{}, nil
	}

	return nil, interactionToOutput(*scheduled), nil
}

func (s *Server) handleCompleteInteraction(_ context.Context, _ *gomcp.CallToolRequest, input completeInteractionInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.InteractionID == "" {
		return errorResult("interaction_id is required"), messageOutput{}, nil
	}

	if err := s.scheduler.Complete(input.InteractionID, input.Notes); err != nil {
		return errorResult(fmt.Sprintf("completing interaction %s: %s", input.InteractionID, err)), messageOutput{}, nil
	}

	out := messageOutput{
		Message: fmt.Sprintf("interaction %s marked completed", input.InteractionID),
	}
	return nil, out, nil
}

func (s *Server) handleListSuggestions(_ context.Context, _ *gomcp.CallToolRequest, _ listSuggestionsInput) (*gomcp.CallToolResult, listSuggestionsOutput, error) {
	suggestions, err := s.engine.Suggestions()
	if err != nil {
		return errorResult(fmt.Sprintf("listing suggestions: %s", err)), listSuggestionsOutput{}, nil
	}

	out := listSuggestionsOutput{
		Suggestions: make([]suggestionOutput, len(suggestions)),
		Count:       len(suggestions),
	}
	for i, suggestion := range suggestions {
		out.Suggestions[i] = suggestionOutput{
			ID:               suggestion.ID,
			RelationshipID:   suggestion.RelationshipID,
			RelationshipName: suggestion.RelationshipName,
			SuggestedDate:    suggestion.SuggestedDate,
			SuggestedTime:    suggestion.SuggestedTime,
			InteractionType:  string(suggestion.InteractionType),
			Reason:           suggestion.ReasonForSuggestion,
			Priority:         suggestion.Priority,
		}
	}

	return nil, out, nil
}

func (s *Server) handleApplySuggestion(_ context.Context, _ *gomcp.CallToolRequest, input applySuggestionInput) (*gomcp.CallToolResult, interactionOutput, error) {
	if input.SuggestionID == "" {
		return errorResult("suggestion_id is required"), interactionOutput{}, nil
	}

	scheduled, err := s.engine.Apply(input.SuggestionID)
	if err != nil {
		return errorResult(fmt.Sprintf("applying suggestion %s: %s", input.SuggestionID, err)), interactionOutput{}, nil
	}
	if scheduled == nil {
		return errorResult(fmt.Sprintf("suggestion %s not found", input.SuggestionID)), interactionOutput{}, nil
	}

	return nil, interactionToOutput(*scheduled), nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		CheckinsScheduled:  metrics.CheckinsScheduled,
		CheckinsCompleted:  metrics.CheckinsCompleted,
		CheckinsSkipped:    metrics.CheckinsSkipped,
		CompletedByType:    metrics.CompletedByType,
		SuggestionsApplied: metrics.SuggestionsApplied,
		SuggestionsSkipped: metrics.SuggestionsSkipped,
		EventCount:         metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

func (s *Server) handleGetReminders(_ context.Context, _ *gomcp.CallToolRequest, _ getRemindersInput) (*gomcp.CallToolResult, getRemindersOutput, error) {
	if s.reminders == nil {
		return errorResult("reminder engine not available (observability may be disabled)"), getRemindersOutput{}, nil
	}

	reminders, err := s.reminders.Evaluate()
	if err != nil {
		return errorResult(fmt.Sprintf("evaluating reminders: %s", err)), getRemindersOutput{}, nil
	}

	out := getRemindersOutput{
		Reminders: make([]reminderOutput, len(reminders)),
		Count:     len(reminders),
	}
	for i, r := range reminders {
		out.Reminders[i] = reminderOutput{
			ID:          r.ID,
			Condition:   r.Condition,
			Severity:    string(r.Severity),
			Message:     r.Message,
			TriggeredAt: r.TriggeredAt.Format(time.RFC3339),
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func interactionToOutput(interaction models.ScheduledInteraction) interactionOutput {
	return interactionOutput{
		ID:               interaction.ID,
		RelationshipID:   interaction.RelationshipID,
		RelationshipName: interaction.RelationshipName,
		ScheduledDate:    interaction.ScheduledDate,
		InteractionType:  string(interaction.InteractionType),
		Duration:         interaction.Duration,
		Purpose:          interaction.Purpose,
		Status:           string(interaction.Status),
		CompletedDate:    interaction.CompletedDate,
		EnergyCost:       interaction.EnergyCost,
	}
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		CompletedByType: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
