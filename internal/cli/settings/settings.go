// Package settings holds the commands that view and change user settings.
package settings

import (
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/scheduler"
	"github.com/julianstephens/lifelog/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Show current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Update settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	lastReport := settings.LastReportDate
	if lastReport == "" {
		lastReport = "never"
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	fmt.Printf("  Report Hour:           %02d:00\n", settings.ReportHour)
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	fmt.Printf("  Last Report:           %s\n", lastReport)
	return nil
}

type SettingsSetCmd struct {
	Timezone      *string `help:"IANA timezone name, or Local for the system timezone."`
	ReportHour    *int    `help:"Hour of day (0-23) after which the daily report is sent."`
	Notifications *bool   `help:"Enable or disable report notifications."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ReportHour != nil {
		if _, err := scheduler.New(*c.ReportHour, nil); err != nil {
			return err
		}
		settings.ReportHour = *c.ReportHour
		updated = true
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'lifelog settings show' to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
