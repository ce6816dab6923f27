package models

// NurturingStats is a derived dashboard snapshot. It has no independent
// lifecycle; every field is recomputed from the ledger, the relationship
// list, and the frequency records.
type NurturingStats struct {
	PlannedToday         int `json:"planned_today"`
	CompletedToday       int `json:"completed_today"`
	PlannedThisWeek      int `json:"planned_this_week"`
	CompletedThisWeek    int `json:"completed_this_week"`
	OverdueCount         int `json:"overdue_count"`
	HealthyRelationships int `json:"healthy_relationships"`
	NeedsAttentionCount  int `json:"needs_attention_count"`
	UpcomingEvents       int `json:"upcoming_events"`
}
