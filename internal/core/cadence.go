package core

import (
	"time"

	"github.com/introware/nurture/pkg/models"
)

// CadenceResolver computes the next check-in date for a relationship from
// either its category default or its custom cadence.
type CadenceResolver interface {
	ComputeNextDate(freq models.RelationshipFrequency, relationships []models.Relationship, categoryDefaults []models.CategoryDefault) string
}

type cadenceResolver struct {
	now func() time.Time
}

// NewCadenceResolver creates a CadenceResolver anchored to the wall clock.
func NewCadenceResolver() CadenceResolver {
	return &cadenceResolver{now: time.Now}
}

// ComputeNextDate advances from today by the resolved cadence and returns
// the result as YYYY-MM-DD. The anchor is always the current date at call
// time, never lastInteraction: recomputing without an intervening
// interaction pushes the due date forward. If the relationship or its
// category default cannot be resolved, today is returned unchanged.
//
// CustomFrequency.FlexibilityDays is deliberately not consulted here; it is
// display metadata only (see DESIGN.md).
func (r *cadenceResolver) ComputeNextDate(freq models.RelationshipFrequency, relationships []models.Relationship, categoryDefaults []models.CategoryDefault) string {
	today := r.now()
	next := today

	if freq.CategoryDefault {
		if rel := findRelationship(relationships, freq.RelationshipID); rel != nil {
			if cd := findCategoryDefault(categoryDefaults, rel.Category); cd != nil {
				next = advance(today, cd.Frequency.Unit, cd.Frequency.Value)
			}
		}
	} else if freq.CustomFrequency != nil {
		next = advance(today, freq.CustomFrequency.Unit, freq.CustomFrequency.Value)
	}

	return FormatDate(next)
}

// advance adds value units to t. Months use a fixed 30-day approximation
// rather than calendar months.
func advance(t time.Time, unit models.FrequencyUnit, value int) time.Time {
	switch unit {
	case models.UnitDays:
		return t.AddDate(0, 0, value)
	case models.UnitWeeks:
		return t.AddDate(0, 0, value*7)
	case models.UnitMonths:
		return t.AddDate(0, 0, value*30)
	}
	return t
}

func findRelationship(relationships []models.Relationship, id string) *models.Relationship {
	for i := range relationships {
		if relationships[i].ID == id {
			return &relationships[i]
		}
	}
	return nil
}

func findCategoryDefault(defaults []models.CategoryDefault, category string) *models.CategoryDefault {
	for i := range defaults {
		if defaults[i].Category == category {
			return &defaults[i]
		}
	}
	return nil
}
