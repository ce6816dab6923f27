package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/introware/nurture/internal/cli"
)

func TestNewApp_WiresServices(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.ConfigMgr == nil || app.RelationshipMgr == nil || app.FrequencyMgr == nil ||
		app.InteractionMgr == nil || app.SuggestionMgr == nil {
		t.Fatal("storage layer not wired")
	}
	if app.Tracker == nil || app.Scheduler == nil || app.Engine == nil || app.StatsCalc == nil {
		t.Fatal("core services not wired")
	}
	if app.EventLog == nil || app.MetricsCalc == nil || app.ReminderEngine == nil {
		t.Fatal("observability not wired")
	}

	// No webhook configured, so no notifier.
	if app.Notifier != nil {
		t.Error("notifier should be nil without slack_webhook")
	}

	// The CLI package vars must point at the app's services.
	if cli.BasePath != dir {
		t.Errorf("cli.BasePath = %q, want %q", cli.BasePath, dir)
	}
	if cli.Scheduler == nil || cli.Tracker == nil || cli.Engine == nil || cli.StatsCalc == nil {
		t.Error("CLI services not wired")
	}
	if cli.ReminderEngine == nil || cli.MetricsCalc == nil {
		t.Error("CLI observability not wired")
	}
}

func TestNewApp_CreatesEventLog(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if _, err := os.Stat(filepath.Join(dir, ".nurture_events.jsonl")); err != nil {
		t.Fatalf("event log file not created: %v", err)
	}
}

func TestNewApp_NotifierFromConfig(t *testing.T) {
	dir := t.TempDir()
	rc := "slack_webhook: \"https://hooks.slack.com/services/T0/B0/x\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".nurturerc"), []byte(rc), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	app, err := NewApp(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.Notifier == nil {
		t.Error("expected notifier when slack_webhook is set")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	rc := "suggestions:\n  time_slot: \"25:99\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".nurturerc"), []byte(rc), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewApp(dir); err == nil {
		t.Fatal("expected error for invalid configuration")
	}
}

func TestResolveBasePath_EnvOverride(t *testing.T) {
	t.Setenv("NURTURE_HOME", "/tmp/nurture-home")

	if got := ResolveBasePath(); got != "/tmp/nurture-home" {
		t.Errorf("ResolveBasePath() = %q, want /tmp/nurture-home", got)
	}
}

func TestResolveBasePath_WalksUpForConfig(t *testing.T) {
	t.Setenv("NURTURE_HOME", "")

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".nurturerc"), []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = os.Chdir(cwd) }()
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ResolveBasePath()
	// Resolve symlinks; on some systems TempDir returns a symlinked path.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("ResolveBasePath() = %q, want %q", got, root)
	}
}
