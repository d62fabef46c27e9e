package models

import (
	"fmt"

	"github.com/julianstephens/lifelog/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingReportHour:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReportHour); err != nil {
				return Settings{}, fmt.Errorf("parsing report_hour: %w", err)
			}
		case constants.SettingLastReportDate:
			settings.LastReportDate = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingReportHour:           fmt.Sprintf("%d", settings.ReportHour),
		constants.SettingLastReportDate:       settings.LastReportDate,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		ReportHour:           constants.DefaultReportHour,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReportHour == 0 {
		settings.ReportHour = constants.DefaultReportHour
	}
}
