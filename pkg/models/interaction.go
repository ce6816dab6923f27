package models

// InteractionType represents the channel of a planned touch-point.
type InteractionType string

const (
	TypeCall    InteractionType = "call"
	TypeMessage InteractionType = "message"
	TypeMeet    InteractionType = "meet"
	TypeEmail   InteractionType = "email"
	TypeVideo   InteractionType = "video"
	TypeOther   InteractionType = "other"
)

// InteractionStatus represents the lifecycle state of a scheduled interaction.
// A rescheduled interaction re-enters the planned state; completed and
// skipped are terminal.
type InteractionStatus string

const (
	StatusPlanned     InteractionStatus = "planned"
	StatusCompleted   InteractionStatus = "completed"
	StatusRescheduled InteractionStatus = "rescheduled"
	StatusSkipped     InteractionStatus = "skipped"
)

// ScheduledInteraction is a planned or historical touch-point with a contact.
// RelationshipName is a denormalized display copy; Relationship holds the
// canonical name.
type ScheduledInteraction struct {
	ID                 string            `yaml:"id"`
	RelationshipID     string            `yaml:"relationship_id"`
	RelationshipName   string            `yaml:"relationship_name"`
	ScheduledDate      string            `yaml:"scheduled_date"` // YYYY-MM-DD
	SuggestedTimeSlots []string          `yaml:"suggested_time_slots,omitempty"`
	InteractionType    InteractionType   `yaml:"interaction_type"`
	Duration           int               `yaml:"duration"` // minutes
	Purpose            string            `yaml:"purpose,omitempty"`
	PreparationNeeded  bool              `yaml:"preparation_needed"`
	PreparationNotes   string            `yaml:"preparation_notes,omitempty"`
	Status             InteractionStatus `yaml:"status"`
	CompletedDate      string            `yaml:"completed_date,omitempty"` // set only when completed
	FollowUpDate       string            `yaml:"follow_up_date,omitempty"`
	EnergyCost         int               `yaml:"energy_cost"` // 1-10
}
