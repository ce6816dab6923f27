// Package core contains the business logic for the nurture scheduler:
// cadence resolution, frequency tracking, the interaction ledger,
// statistics aggregation, and suggestion/insight derivation.
package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/introware/nurture/pkg/models"
	"github.com/spf13/viper"
)

// validTimeSlotPattern matches 24-hour HH:MM time slots.
var validTimeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ConfigurationManager defines the interface for loading and validating
// configuration from the .nurturerc file.
type ConfigurationManager interface {
	LoadConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
	// CategoryDefaults satisfies CategoryDefaultsProvider for the
	// frequency tracker.
	CategoryDefaults() ([]models.CategoryDefault, error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .nurturerc relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func defaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		CategoryDefaults: []models.CategoryDefault{
			{Category: "family", Frequency: models.CategoryFrequency{Unit: models.UnitWeeks, Value: 1}},
			{Category: "close friends", Frequency: models.CategoryFrequency{Unit: models.UnitWeeks, Value: 2}},
			{Category: "friends", Frequency: models.CategoryFrequency{Unit: models.UnitMonths, Value: 1}},
			{Category: "work contacts", Frequency: models.CategoryFrequency{Unit: models.UnitMonths, Value: 3}},
		},
		SuggestionLeadDays:  3,
		SuggestionTimeSlot:  "18:30",
		OverdueReminderDays: 7,
		MaxDailyEnergy:      12,
		StaleSuggestionDays: 14,
	}
}

// LoadConfig reads the .nurturerc file from the base path using Viper.
// If the file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.GlobalConfig, error) {
	cfg := defaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".nurturerc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("suggestions.lead_days", cfg.SuggestionLeadDays)
	v.SetDefault("suggestions.time_slot", cfg.SuggestionTimeSlot)
	v.SetDefault("reminders.overdue_days", cfg.OverdueReminderDays)
	v.SetDefault("reminders.max_daily_energy", cfg.MaxDailyEnergy)
	v.SetDefault("reminders.stale_suggestion_days", cfg.StaleSuggestionDays)
	v.SetDefault("slack_webhook", cfg.SlackWebhookURL)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .nurturerc: %w", err)
	}

	cfg.SuggestionLeadDays = v.GetInt("suggestions.lead_days")
	cfg.SuggestionTimeSlot = v.GetString("suggestions.time_slot")
	cfg.OverdueReminderDays = v.GetInt("reminders.overdue_days")
	cfg.MaxDailyEnergy = v.GetInt("reminders.max_daily_energy")
	cfg.StaleSuggestionDays = v.GetInt("reminders.stale_suggestion_days")
	cfg.SlackWebhookURL = v.GetString("slack_webhook")

	// Parse the categories section. The file overrides the built-in
	// defaults wholesale when present.
	if raw := v.Get("categories"); raw != nil {
		if categoryMap, ok := raw.(map[string]interface{}); ok {
			var defaults []models.CategoryDefault
			for category, entry := range categoryMap {
				m, ok := entry.(map[string]interface{})
				if !ok {
					continue
				}
				cd := models.CategoryDefault{Category: category}
				if unit, ok := m["unit"].(string); ok {
					cd.Frequency.Unit = models.FrequencyUnit(unit)
				}
				switch value := m["value"].(type) {
				case int:
					cd.Frequency.Value = value
				case float64:
					cd.Frequency.Value = int(value)
				}
				defaults = append(defaults, cd)
			}
			// Map iteration order is random; keep the list stable.
			sort.Slice(defaults, func(i, j int) bool {
				return defaults[i].Category < defaults[j].Category
			})
			if len(defaults) > 0 {
				cfg.CategoryDefaults = defaults
			}
		}
	}

	return cfg, nil
}

// CategoryDefaults loads the configuration and returns the per-category
// cadence defaults.
func (cm *viperConfigManager) CategoryDefaults() ([]models.CategoryDefault, error) {
	cfg, err := cm.LoadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.CategoryDefaults, nil
}

// validUnits is the set of allowed FrequencyUnit values.
var validUnits = map[models.FrequencyUnit]bool{
	models.UnitDays:   true,
	models.UnitWeeks:  true,
	models.UnitMonths: true,
}

// ValidateConfig checks the configuration for invalid values and returns a
// clear error message identifying each problem.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	seen := make(map[string]bool, len(cfg.CategoryDefaults))
	for _, cd := range cfg.CategoryDefaults {
		if cd.Category == "" {
			errs = append(errs, "categories: category name must not be empty")
			continue
		}
		if seen[cd.Category] {
			errs = append(errs, fmt.Sprintf("categories: duplicate default for %q", cd.Category))
		}
		seen[cd.Category] = true

		if !validUnits[cd.Frequency.Unit] {
			errs = append(errs, fmt.Sprintf(
				"categories.%s: unit %q is invalid, must be one of: days, weeks, months",
				cd.Category, cd.Frequency.Unit,
			))
		}
		if cd.Frequency.Value <= 0 {
			errs = append(errs, fmt.Sprintf(
				"categories.%s: value must be positive, got %d",
				cd.Category, cd.Frequency.Value,
			))
		}
	}

	if cfg.SuggestionLeadDays < 0 {
		errs = append(errs, fmt.Sprintf("suggestions.lead_days must be non-negative, got %d", cfg.SuggestionLeadDays))
	}
	if cfg.SuggestionTimeSlot != "" && !validTimeSlotPattern.MatchString(cfg.SuggestionTimeSlot) {
		errs = append(errs, fmt.Sprintf("suggestions.time_slot %q is invalid, must be HH:MM", cfg.SuggestionTimeSlot))
	}
	if cfg.OverdueReminderDays < 0 {
		errs = append(errs, fmt.Sprintf("reminders.overdue_days must be non-negative, got %d", cfg.OverdueReminderDays))
	}
	if cfg.MaxDailyEnergy < 0 {
		errs = append(errs, fmt.Sprintf("reminders.max_daily_energy must be non-negative, got %d", cfg.MaxDailyEnergy))
	}
	if cfg.StaleSuggestionDays < 0 {
		errs = append(errs, fmt.Sprintf("reminders.stale_suggestion_days must be non-negative, got %d", cfg.StaleSuggestionDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
