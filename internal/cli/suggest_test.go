package cli

import (
	"strings"
	"testing"
)

func TestSuggestCmd_Subcommands(t *testing.T) {
	expected := []string{"generate", "list", "apply", "skip"}
	subs := make(map[string]bool)
	for _, cmd := range suggestCmd.Commands() {
		subs[cmd.Name()] = true
	}
	for _, name := range expected {
		if !subs[name] {
			t.Errorf("expected subcommand %q on 'suggest', but it was not registered", name)
		}
	}
}

func TestSuggestCommands_NilEngine(t *testing.T) {
	origEngine := Engine
	defer func() { Engine = origEngine }()
	Engine = nil

	tests := []struct {
		name string
		run  func() error
	}{
		{"generate", func() error { return suggestGenerateCmd.RunE(suggestGenerateCmd, nil) }},
		{"list", func() error { return suggestListCmd.RunE(suggestListCmd, nil) }},
		{"apply", func() error { return suggestApplyCmd.RunE(suggestApplyCmd, []string{"SUG-00001"}) }},
		{"skip", func() error { return suggestSkipCmd.RunE(suggestSkipCmd, []string{"SUG-00001"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected error when Engine is nil")
			}
			if !strings.Contains(err.Error(), "suggestion engine not initialized") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSuggestApply_UnknownIDSucceeds(t *testing.T) {
	setupServices(t)

	// Unknown suggestions report not-found without failing the command.
	if err := suggestApplyCmd.RunE(suggestApplyCmd, []string{"SUG-99999"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSuggestGenerate_EmptyState(t *testing.T) {
	setupServices(t)

	if err := suggestGenerateCmd.RunE(suggestGenerateCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
