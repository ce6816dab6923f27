package cli

import (
	"strings"
	"testing"
)

func TestCadenceCmd_Subcommands(t *testing.T) {
	expected := []string{"set", "default", "list"}
	subs := make(map[string]bool)
	for _, cmd := range cadenceCmd.Commands() {
		subs[cmd.Name()] = true
	}
	for _, name := range expected {
		if !subs[name] {
			t.Errorf("expected subcommand %q on 'cadence', but it was not registered", name)
		}
	}
}

func TestCadenceSet_NilTracker(t *testing.T) {
	origTracker := Tracker
	defer func() { Tracker = origTracker }()
	Tracker = nil

	err := cadenceSetCmd.RunE(cadenceSetCmd, []string{"REL-00001"})
	if err == nil {
		t.Fatal("expected error when Tracker is nil")
	}
	if !strings.Contains(err.Error(), "frequency tracker not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCadenceSet_InvalidUnit(t *testing.T) {
	setupServices(t)

	origUnit, _ := cadenceSetCmd.Flags().GetString("unit")
	defer func() { _ = cadenceSetCmd.Flags().Set("unit", origUnit) }()
	_ = cadenceSetCmd.Flags().Set("unit", "fortnights")

	err := cadenceSetCmd.RunE(cadenceSetCmd, []string{"REL-00001"})
	if err == nil {
		t.Fatal("expected error for invalid unit")
	}
	if !strings.Contains(err.Error(), "invalid unit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCadenceSet_NonPositiveValue(t *testing.T) {
	setupServices(t)

	origEvery, _ := cadenceSetCmd.Flags().GetInt("every")
	defer func() { _ = cadenceSetCmd.Flags().Set("every", "1") }()
	_ = origEvery
	_ = cadenceSetCmd.Flags().Set("every", "0")

	err := cadenceSetCmd.RunE(cadenceSetCmd, []string{"REL-00001"})
	if err == nil {
		t.Fatal("expected error for non-positive interval")
	}
	if !strings.Contains(err.Error(), "must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCadenceSet_OverridesDefault(t *testing.T) {
	setupServices(t)

	if err := relationshipAddCmd.RunE(relationshipAddCmd, []string{"Ana"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origEvery, _ := cadenceSetCmd.Flags().GetInt("every")
	origUnit, _ := cadenceSetCmd.Flags().GetString("unit")
	defer func() {
		_ = cadenceSetCmd.Flags().Set("every", "1")
		_ = cadenceSetCmd.Flags().Set("unit", origUnit)
		_ = origEvery
	}()
	_ = cadenceSetCmd.Flags().Set("every", "10")
	_ = cadenceSetCmd.Flags().Set("unit", "days")

	if err := cadenceSetCmd.RunE(cadenceSetCmd, []string{"REL-00001"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frequencies, err := Tracker.Frequencies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frequencies) != 1 {
		t.Fatalf("expected 1 record, got %d", len(frequencies))
	}
	freq := frequencies[0]
	if freq.CategoryDefault {
		t.Error("expected custom cadence")
	}
	if freq.CustomFrequency == nil || freq.CustomFrequency.Value != 10 {
		t.Errorf("custom cadence not stored: %+v", freq.CustomFrequency)
	}
}

func TestCadenceDefault_Reverts(t *testing.T) {
	setupServices(t)

	if err := relationshipAddCmd.RunE(relationshipAddCmd, []string{"Ana"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	origUnit, _ := cadenceSetCmd.Flags().GetString("unit")
	defer func() {
		_ = cadenceSetCmd.Flags().Set("every", "1")
		_ = cadenceSetCmd.Flags().Set("unit", origUnit)
	}()
	_ = cadenceSetCmd.Flags().Set("every", "10")
	_ = cadenceSetCmd.Flags().Set("unit", "days")
	if err := cadenceSetCmd.RunE(cadenceSetCmd, []string{"REL-00001"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cadenceDefaultCmd.RunE(cadenceDefaultCmd, []string{"REL-00001"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frequencies, err := Tracker.Frequencies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frequencies[0].CategoryDefault {
		t.Error("expected category default after revert")
	}
}

func TestCadenceList_NilTracker(t *testing.T) {
	origTracker := Tracker
	defer func() { Tracker = origTracker }()
	Tracker = nil

	if err := cadenceListCmd.RunE(cadenceListCmd, nil); err == nil {
		t.Fatal("expected error when Tracker is nil")
	}
}
