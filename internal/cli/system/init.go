package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
)

type InitCmd struct {
	Force      bool `help:"Delete an existing SQLite database before initialization."`
	NoDefaults bool `help:"Skip the starter hygiene habits and workout template."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized lifelog storage at: %s\n", ctx.Store.GetConfigPath())

	if err := applyReportHour(ctx); err != nil {
		return err
	}

	if c.NoDefaults {
		return nil
	}
	n, err := cli.SeedDefaults(ctx.Store, ctx.Clock())
	if err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}
	if n > 0 {
		fmt.Printf("Added %d starter records (hygiene habits and %q).\n", n, cli.DefaultTemplateName)
	}
	return nil
}

// applyReportHour copies the configured default report hour into settings
// that still hold the built-in default and have never sent a report.
func applyReportHour(ctx *cli.Context) error {
	if ctx.Config == nil || ctx.Config.Report.DefaultHour == constants.DefaultReportHour {
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.LastReportDate != "" || settings.ReportHour != constants.DefaultReportHour {
		return nil
	}
	settings.ReportHour = ctx.Config.Report.DefaultHour
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage; use 'lifelog data clear' instead")
	}
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
