package cli

import (
	"github.com/introware/nurture/internal/core"
	"github.com/introware/nurture/internal/observability"
	"github.com/introware/nurture/internal/storage"
)

// Service instances, set during app initialization in app.go.
var (
	RelationshipMgr storage.RelationshipManager
	RelIDs          core.IDGenerator
	Tracker         core.FrequencyTracker
	Scheduler       core.InteractionScheduler
	Engine          core.SuggestionEngine
	StatsCalc       core.StatsCalculator
	ConfigMgr       core.ConfigurationManager

	// BasePath is the resolved data directory.
	BasePath string
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog       observability.EventLog
	ReminderEngine observability.ReminderEngine
	MetricsCalc    observability.MetricsCalculator
	Notifier       observability.Notifier
)
