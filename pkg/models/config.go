package models

// GlobalConfig holds settings read from the .nurturerc file.
type GlobalConfig struct {
	// CategoryDefaults are the fallback cadences per relationship category.
	CategoryDefaults []CategoryDefault

	// SuggestionLeadDays is how far out suggestions synthesized from
	// insights are dated.
	SuggestionLeadDays int
	// SuggestionTimeSlot is the default HH:MM slot for synthesized suggestions.
	SuggestionTimeSlot string

	// Reminder thresholds.
	OverdueReminderDays int
	MaxDailyEnergy      int
	StaleSuggestionDays int

	// SlackWebhookURL, when set, enables reminder notifications.
	SlackWebhookURL string
}
