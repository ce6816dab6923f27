package storage

import (
	"errors"
	"testing"

	"github.com/introware/nurture/pkg/models"
)

func newTestRelationshipManager(t *testing.T) *fileRelationshipManager {
	t.Helper()
	dir := t.TempDir()
	return NewRelationshipManager(dir).(*fileRelationshipManager)
}

func sampleRelationship(id string) models.Relationship {
	return models.Relationship{
		ID:         id,
		Name:       "Contact " + id,
		Category:   "friends",
		Importance: 3,
		Interests:  []string{"hiking"},
	}
}

func TestAddRelationship(t *testing.T) {
	mgr := newTestRelationshipManager(t)
	rel := sampleRelationship("REL-00001")

	if err := mgr.Add(rel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get("REL-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != rel.Name {
		t.Fatalf("expected name %q, got %q", rel.Name, got.Name)
	}
}

func TestAddRelationship_EmptyID(t *testing.T) {
	mgr := newTestRelationshipManager(t)

	if err := mgr.Add(models.Relationship{Name: "no id"}); err == nil {
		t.Fatal("expected error for empty ID")
	}
}

func TestAddRelationship_DuplicateID(t *testing.T) {
	mgr := newTestRelationshipManager(t)
	rel := sampleRelationship("REL-00001")

	if err := mgr.Add(rel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Add(rel); err == nil {
		t.Fatal("expected error for duplicate ID")
	}
}

func TestUpdateRelationship_MergesNonZeroFields(t *testing.T) {
	mgr := newTestRelationshipManager(t)
	if err := mgr.Add(sampleRelationship("REL-00001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.Update("REL-00001", models.Relationship{Category: "close friends"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get("REL-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != "close friends" {
		t.Fatalf("expected category %q, got %q", "close friends", got.Category)
	}
	if got.Name != "Contact REL-00001" {
		t.Fatalf("name should be untouched, got %q", got.Name)
	}
}

func TestUpdateRelationship_NotFound(t *testing.T) {
	mgr := newTestRelationshipManager(t)

	err := mgr.Update("REL-99999", models.Relationship{Name: "nobody"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveRelationship(t *testing.T) {
	mgr := newTestRelationshipManager(t)
	if err := mgr.Add(sampleRelationship("REL-00001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.Remove("REL-00001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.Get("REL-00001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestAddLifeEvent(t *testing.T) {
	mgr := newTestRelationshipManager(t)
	if err := mgr.Add(sampleRelationship("REL-00001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	event := models.LifeEvent{
		EventType:   "birthday",
		Date:        "2026-09-15",
		Description: "40th birthday",
	}
	if err := mgr.AddLifeEvent("REL-00001", event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get("REL-00001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.LifeEvents) != 1 {
		t.Fatalf("expected 1 life event, got %d", len(got.LifeEvents))
	}
	if got.LifeEvents[0].RelationshipID != "REL-00001" {
		t.Fatalf("event relationship ID not backfilled, got %q", got.LifeEvents[0].RelationshipID)
	}
}

func TestAddLifeEvent_NotFound(t *testing.T) {
	mgr := newTestRelationshipManager(t)

	err := mgr.AddLifeEvent("REL-99999", models.LifeEvent{Date: "2026-09-15"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRelationships_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	mgr := NewRelationshipManager(dir)

	if err := mgr.Add(sampleRelationship("REL-00001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Add(sampleRelationship("REL-00002")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := NewRelationshipManager(dir)
	if err := fresh.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all, err := fresh.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 relationships after reload, got %d", len(all))
	}
	if all[0].ID != "REL-00001" || all[1].ID != "REL-00002" {
		t.Fatalf("expected sorted IDs, got %s, %s", all[0].ID, all[1].ID)
	}
}

func TestRelationships_LoadMissingFile(t *testing.T) {
	mgr := newTestRelationshipManager(t)

	if err := mgr.Load(); err != nil {
		t.Fatalf("load of missing file should not error: %v", err)
	}
	all, err := mgr.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(all))
	}
}
