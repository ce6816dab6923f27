// Package internal provides the App struct that wires all components of the
// nurture scheduler together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/introware/nurture/internal/cli"
	"github.com/introware/nurture/internal/core"
	"github.com/introware/nurture/internal/observability"
	"github.com/introware/nurture/internal/storage"
)

// App holds all service dependencies for the nurture scheduler.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	RelationshipMgr storage.RelationshipManager
	FrequencyMgr    storage.FrequencyManager
	InteractionMgr  storage.InteractionManager
	SuggestionMgr   storage.SuggestionManager

	// Core services
	Resolver  core.CadenceResolver
	Tracker   core.FrequencyTracker
	Scheduler core.InteractionScheduler
	Engine    core.SuggestionEngine
	StatsCalc core.StatsCalculator

	// ID generators
	RelIDs core.IDGenerator
	IntIDs core.IDGenerator
	SugIDs core.IDGenerator
	InsIDs core.IDGenerator

	// Observability
	EventLog       observability.EventLog
	ReminderEngine observability.ReminderEngine
	MetricsCalc    observability.MetricsCalculator
	Notifier       observability.Notifier
}

// NewApp creates and wires all components of the nurture scheduler.
// basePath is the root directory where all data is stored (typically the
// directory containing .nurturerc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	// --- Storage layer ---
	app.RelationshipMgr = storage.NewRelationshipManager(basePath)
	app.FrequencyMgr = storage.NewFrequencyManager(basePath)
	app.InteractionMgr = storage.NewInteractionManager(basePath)
	app.SuggestionMgr = storage.NewSuggestionManager(basePath)

	// --- ID generators ---
	app.RelIDs = core.NewIDGenerator(basePath, "REL", 5)
	app.IntIDs = core.NewIDGenerator(basePath, "INT", 5)
	app.SugIDs = core.NewIDGenerator(basePath, "SUG", 5)
	app.InsIDs = core.NewIDGenerator(basePath, "INS", 5)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".nurture_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}
	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.SlackWebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	// --- Core services ---
	app.Resolver = core.NewCadenceResolver()
	app.Tracker = core.NewFrequencyTracker(app.FrequencyMgr, app.RelationshipMgr, app.ConfigMgr, app.Resolver)
	app.Scheduler = core.NewInteractionScheduler(app.InteractionMgr, app.RelationshipMgr, app.Tracker, app.IntIDs, events)
	app.Engine = core.NewSuggestionEngine(app.SuggestionMgr, app.RelationshipMgr, app.Tracker, app.Scheduler, app.SugIDs, app.InsIDs, events, cfg.SuggestionLeadDays, cfg.SuggestionTimeSlot)
	app.StatsCalc = core.NewStatsCalculator(app.InteractionMgr, app.RelationshipMgr, app.Tracker)

	// --- Reminder engine ---
	thresholds := observability.DefaultReminderThresholds()
	if cfg.OverdueReminderDays > 0 {
		thresholds.OverdueDays = cfg.OverdueReminderDays
	}
	if cfg.MaxDailyEnergy > 0 {
		thresholds.MaxDailyEnergy = cfg.MaxDailyEnergy
	}
	if cfg.StaleSuggestionDays > 0 {
		thresholds.StaleSuggestionDays = cfg.StaleSuggestionDays
	}
	app.ReminderEngine = observability.NewReminderEngine(app.Tracker, app.Scheduler, app.Engine, thresholds)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.ConfigMgr = app.ConfigMgr
	cli.RelationshipMgr = app.RelationshipMgr
	cli.RelIDs = app.RelIDs
	cli.Tracker = app.Tracker
	cli.Scheduler = app.Scheduler
	cli.Engine = app.Engine
	cli.StatsCalc = app.StatsCalc

	cli.EventLog = app.EventLog
	cli.ReminderEngine = app.ReminderEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the nurture data directory.
// It checks for NURTURE_HOME env var, then walks up from the current
// directory looking for a .nurturerc file.
func ResolveBasePath() string {
	if home := os.Getenv("NURTURE_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".nurturerc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// Fall back to cwd.
	cwd, _ := os.Getwd()
	return cwd
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
