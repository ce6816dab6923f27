package models

// FrequencyUnit is the unit of a check-in cadence.
type FrequencyUnit string

const (
	UnitDays   FrequencyUnit = "days"
	UnitWeeks  FrequencyUnit = "weeks"
	UnitMonths FrequencyUnit = "months"
)

// CategoryFrequency is a cadence applied to every relationship in a category.
type CategoryFrequency struct {
	Unit  FrequencyUnit `yaml:"unit"`
	Value int           `yaml:"value"`
}

// CategoryDefault maps a category to its fallback cadence. At most one
// default exists per category string.
type CategoryDefault struct {
	Category  string            `yaml:"category"`
	Frequency CategoryFrequency `yaml:"frequency"`
}

// CustomFrequency is a per-relationship cadence override. FlexibilityDays is
// carried for display but does not affect the overdue computation.
type CustomFrequency struct {
	Unit            FrequencyUnit `yaml:"unit"`
	Value           int           `yaml:"value"`
	FlexibilityDays int           `yaml:"flexibility_days"`
}

// RelationshipFrequency is the per-relationship cadence state. When
// CategoryDefault is true the relationship follows its category's default
// cadence and CustomFrequency is nil.
type RelationshipFrequency struct {
	RelationshipID  string           `yaml:"relationship_id"`
	CategoryDefault bool             `yaml:"category_default"`
	CustomFrequency *CustomFrequency `yaml:"custom_frequency,omitempty"`
	LastInteraction string           `yaml:"last_interaction"` // YYYY-MM-DD
	NextScheduled   string           `yaml:"next_scheduled"`   // YYYY-MM-DD
	IsOverdue       bool             `yaml:"is_overdue"`
	OverdueDays     int              `yaml:"overdue_days"`
}
