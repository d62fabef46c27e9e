package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/cli/backups"
	"github.com/julianstephens/lifelog/internal/cli/data"
	"github.com/julianstephens/lifelog/internal/cli/reports"
	"github.com/julianstephens/lifelog/internal/cli/settings"
	"github.com/julianstephens/lifelog/internal/cli/system"
	"github.com/julianstephens/lifelog/internal/cli/tracking"
	"github.com/julianstephens/lifelog/internal/cli/views"
	"github.com/julianstephens/lifelog/internal/config"
	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/errors"
	"github.com/julianstephens/lifelog/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to config.yaml (default: $LIFELOG_CONFIG or ~/.config/lifelog/config.yaml)." type:"path"`
	DB      string `name:"db" help:"SQLite file or PostgreSQL connection string, overriding the configured database. PostgreSQL credentials must NOT be embedded; use the OS keyring, LIFELOG_DB_CONNECTION or .pgpass."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd    `cmd:"" help:"Initialize lifelog storage."`
	Migrate   system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	DebugCmds system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`

	Today    views.TodayCmd    `cmd:"" help:"Show today's summary."`
	Score    views.ScoreCmd    `cmd:"" help:"Show a day's completion score breakdown."`
	Calendar views.CalendarCmd `cmd:"" help:"Show a month calendar coloured by completion."`

	Dopamine tracking.DopamineCmd `cmd:"" help:"Track dopamine control."`
	Workout  tracking.WorkoutCmd  `cmd:"" help:"Track workouts, templates and personal records."`
	Hygiene  tracking.HygieneCmd  `cmd:"" help:"Track hygiene habits."`
	Mood     tracking.MoodCmd     `cmd:"" help:"Track mood ratings."`

	Report     reports.ReportCmd    `cmd:"" help:"Build and deliver the daily report."`
	Data       data.DataCmd         `cmd:"" help:"Clear, delete, export and import data."`
	Backup     backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Settings   settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	ConfigCmds struct {
		SetConnection   system.SetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ClearConnection system.ClearConnectionCmd `cmd:"" help:"Remove the PostgreSQL connection string from the OS keyring."`
	} `cmd:"" name:"config" help:"Manage connection configuration."`
}

func recordKinds() string {
	kinds := make([]string, len(constants.RecordKinds))
	for i, k := range constants.RecordKinds {
		kinds[i] = string(k)
	}
	return strings.Join(kinds, ",")
}

// selfLoading commands open or create the store themselves.
func selfLoading(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "init", "doctor", "config":
		return true
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lifelog"),
		kong.Description("Daily tracker for dopamine control, workouts, hygiene and mood"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          "v0.1.0",
			"kinds":            recordKinds(),
			"default_template": cli.DefaultTemplateName,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.Database.Path = config.ExpandHome(CLI.DB)
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		LogDir:    cfg.LogDir(),
		ConfigDir: cfg.ConfigDir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	store, err := cli.OpenStore(cfg, os.Getenv)
	if err != nil {
		// Keyring commands must work before any connection is configured.
		if !strings.HasPrefix(command, "config ") {
			errors.Fatal(err)
		}
		logger.Debug("No store available", "error", err)
	}

	if store != nil && !selfLoading(command) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close store", "error", err)
			}
		}()
	}

	logger.Debug("Running command", "command", command)
	if err := ctx.Run(cli.NewContext(store, cfg)); err != nil {
		if store != nil {
			_ = store.Close()
		}
		errors.Fatal(err)
	}
}
