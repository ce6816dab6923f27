package storage

import (
	"errors"
	"testing"

	"github.com/introware/nurture/pkg/models"
)

func newTestInteractionManager(t *testing.T) *fileInteractionManager {
	t.Helper()
	dir := t.TempDir()
	return NewInteractionManager(dir).(*fileInteractionManager)
}

func sampleInteraction(id, date string) models.ScheduledInteraction {
	return models.ScheduledInteraction{
		ID:              id,
		RelationshipID:  "REL-00001",
		ScheduledDate:   date,
		InteractionType: models.TypeMessage,
		Duration:        15,
		Status:          models.StatusPlanned,
		EnergyCost:      2,
	}
}

func TestAddInteraction(t *testing.T) {
	mgr := newTestInteractionManager(t)

	if err := mgr.Add(sampleInteraction("INT-00001", "2026-09-02")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get("INT-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusPlanned {
		t.Fatalf("expected planned status, got %s", got.Status)
	}
}

func TestAddInteraction_Duplicate(t *testing.T) {
	mgr := newTestInteractionManager(t)
	interaction := sampleInteraction("INT-00001", "2026-09-02")

	if err := mgr.Add(interaction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Add(interaction); err == nil {
		t.Fatal("expected error for duplicate ID")
	}
}

func TestMergeInteraction_OverlaysNonZeroFields(t *testing.T) {
	mgr := newTestInteractionManager(t)
	if err := mgr.Add(sampleInteraction("INT-00001", "2026-09-02")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updates := models.ScheduledInteraction{
		Status:        models.StatusCompleted,
		CompletedDate: "2026-09-02",
	}
	if err := mgr.Merge("INT-00001", updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get("INT-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Fatalf("expected completed status, got %s", got.Status)
	}
	if got.CompletedDate != "2026-09-02" {
		t.Fatalf("expected completed date set, got %q", got.CompletedDate)
	}
	// Untouched fields survive the merge.
	if got.ScheduledDate != "2026-09-02" || got.Duration != 15 {
		t.Fatalf("merge clobbered unrelated fields: %+v", got)
	}
}

func TestMergeInteraction_NotFound(t *testing.T) {
	mgr := newTestInteractionManager(t)

	err := mgr.Merge("INT-99999", models.ScheduledInteraction{Status: models.StatusSkipped})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAllInteractions_SortedByDateThenID(t *testing.T) {
	mgr := newTestInteractionManager(t)
	for _, i := range []models.ScheduledInteraction{
		sampleInteraction("INT-00002", "2026-09-05"),
		sampleInteraction("INT-00003", "2026-09-01"),
		sampleInteraction("INT-00001", "2026-09-05"),
	} {
		if err := mgr.Add(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all, err := mgr.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []string{"INT-00003", "INT-00001", "INT-00002"}
	for i, want := range wantOrder {
		if all[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}
}

func TestFilterInteractions(t *testing.T) {
	mgr := newTestInteractionManager(t)

	a := sampleInteraction("INT-00001", "2026-09-02")
	b := sampleInteraction("INT-00002", "2026-09-03")
	b.Status = models.StatusCompleted
	c := sampleInteraction("INT-00003", "2026-09-02")
	c.RelationshipID = "REL-00002"

	for _, i := range []models.ScheduledInteraction{a, b, c} {
		if err := mgr.Add(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter InteractionFilter
		want   []string
	}{
		{
			name:   "by status",
			filter: InteractionFilter{Status: []models.InteractionStatus{models.StatusCompleted}},
			want:   []string{"INT-00002"},
		},
		{
			name:   "by relationship",
			filter: InteractionFilter{RelationshipID: "REL-00002"},
			want:   []string{"INT-00003"},
		},
		{
			name:   "by date",
			filter: InteractionFilter{ScheduledDate: "2026-09-02"},
			want:   []string{"INT-00001", "INT-00003"},
		},
		{
			name:   "combined",
			filter: InteractionFilter{ScheduledDate: "2026-09-02", RelationshipID: "REL-00001"},
			want:   []string{"INT-00001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mgr.Filter(tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d results, got %d", len(tt.want), len(got))
			}
			for i, want := range tt.want {
				if got[i].ID != want {
					t.Fatalf("position %d: expected %s, got %s", i, want, got[i].ID)
				}
			}
		})
	}
}

func TestInteractions_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	mgr := NewInteractionManager(dir)

	if err := mgr.Add(sampleInteraction("INT-00001", "2026-09-02")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := NewInteractionManager(dir)
	if err := fresh.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := fresh.Get("INT-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.InteractionType != models.TypeMessage {
		t.Fatalf("expected message type after reload, got %s", got.InteractionType)
	}
}
