package models

// LifeEvent is a meaningful dated event for a relationship, such as a
// birthday, anniversary, or promotion.
type LifeEvent struct {
	ID                 string `yaml:"id"`
	RelationshipID     string `yaml:"relationship_id"`
	EventType          string `yaml:"event_type"`
	Date               string `yaml:"date"` // YYYY-MM-DD
	Description        string `yaml:"description"`
	Recurring          bool   `yaml:"recurring"`
	ReminderDaysBefore int    `yaml:"reminder_days_before"`
}

// ConversationTopic is a suggested topic to bring up with a contact.
type ConversationTopic struct {
	ID            string `yaml:"id"`
	Topic         string `yaml:"topic"`
	Context       string `yaml:"context"`
	Source        string `yaml:"source"`
	Importance    int    `yaml:"importance"` // 1-5
	LastDiscussed string `yaml:"last_discussed,omitempty"`
}

// InteractionRecord is a single historical interaction with a contact.
type InteractionRecord struct {
	Date    string          `yaml:"date"` // YYYY-MM-DD
	Type    InteractionType `yaml:"type"`
	Notes   string          `yaml:"notes"`
	Quality int             `yaml:"quality"` // 1-5
}

// Relationship represents a contact the user wants to stay connected with.
// Name copies held on interactions and suggestions are display caches; this
// struct is the source of truth.
type Relationship struct {
	ID                 string              `yaml:"id"`
	Name               string              `yaml:"name"`
	Category           string              `yaml:"category"` // free-text tag, e.g. "family", "close friends"
	Importance         int                 `yaml:"importance"`
	Notes              string              `yaml:"notes,omitempty"`
	Interests          []string            `yaml:"interests,omitempty"`
	LifeEvents         []LifeEvent         `yaml:"life_events,omitempty"`
	ConversationTopics []ConversationTopic `yaml:"conversation_topics,omitempty"`
	InteractionHistory []InteractionRecord `yaml:"interaction_history,omitempty"`
}
