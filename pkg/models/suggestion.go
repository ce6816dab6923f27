package models

// ExpectedResponse is how quickly a contact typically responds.
type ExpectedResponse string

const (
	ResponseFast   ExpectedResponse = "fast"
	ResponseMedium ExpectedResponse = "medium"
	ResponseSlow   ExpectedResponse = "slow"
)

// ConnectionSuggestion is a proposed interaction that has not yet been
// committed to the ledger. It is destroyed when applied or skipped.
type ConnectionSuggestion struct {
	ID                  string           `yaml:"id"`
	RelationshipID      string           `yaml:"relationship_id"`
	RelationshipName    string           `yaml:"relationship_name"`
	Suggested           bool             `yaml:"suggested"` // system-generated vs. user-authored
	SuggestedDate       string           `yaml:"suggested_date"` // YYYY-MM-DD
	SuggestedTime       string           `yaml:"suggested_time"` // HH:MM
	InteractionType     InteractionType  `yaml:"interaction_type"`
	ReasonForSuggestion string           `yaml:"reason_for_suggestion"`
	EnergyLevelRequired int              `yaml:"energy_level_required"` // 1-10
	Priority            int              `yaml:"priority"`              // 1-5, 1 is highest
	ExpectedResponse    ExpectedResponse `yaml:"expected_response"`
}

// InsightType classifies a relationship insight. Only connection_gap
// insights currently produce a follow-on suggestion when acted upon.
type InsightType string

const (
	InsightConnectionGap          InsightType = "connection_gap"
	InsightInteractionPattern     InsightType = "interaction_pattern"
	InsightEnergyImpact           InsightType = "energy_impact"
	InsightConversationSuggestion InsightType = "conversation_suggestion"
	InsightRelationshipHealth     InsightType = "relationship_health"
)

// InsightSeverity represents how urgent an insight is.
type InsightSeverity string

const (
	InsightSeverityLow    InsightSeverity = "low"
	InsightSeverityMedium InsightSeverity = "medium"
	InsightSeverityHigh   InsightSeverity = "high"
)

// Insight is a system-surfaced observation about relationship health
// intended to prompt user action.
type Insight struct {
	ID               string          `yaml:"id"`
	RelationshipID   string          `yaml:"relationship_id"`
	RelationshipName string          `yaml:"relationship_name"`
	Title            string          `yaml:"title"`
	Description      string          `yaml:"description"`
	Recommendation   string          `yaml:"recommendation"`
	Type             InsightType     `yaml:"type"`
	Severity         InsightSeverity `yaml:"severity"`
	DateGenerated    string          `yaml:"date_generated"` // YYYY-MM-DD
	IsNew            bool            `yaml:"is_new"`
}
