package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifelog/internal/backup"
	"github.com/julianstephens/lifelog/internal/config"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/notifier"
	"github.com/julianstephens/lifelog/internal/report"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
	"github.com/julianstephens/lifelog/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Config    *config.Config
	Notifier  report.Notifier
	Clipboard report.ClipboardWriter
	Now       func() time.Time
}

// NewContext wires the production notifier, clipboard and clock.
func NewContext(store storage.Provider, cfg *config.Config) *Context {
	return &Context{
		Store:     store,
		Config:    cfg,
		Notifier:  notifier.New(cfg.Notifier.DurationMs),
		Clipboard: report.SystemClipboard,
		Now:       time.Now,
	}
}

// Clock returns the current time, which tests may pin with Now.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Location returns the timezone from the user's settings.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	return loc, nil
}

// LocalNow is the current time in the user's timezone.
func (c *Context) LocalNow() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return c.Clock().In(loc), nil
}

func (c *Context) Today() (string, error) {
	now, err := c.LocalNow()
	if err != nil {
		return "", err
	}
	return utils.FormatDate(now), nil
}

// ResolveDate validates date, treating "" and "today" as the current day.
func (c *Context) ResolveDate(date string) (string, error) {
	if date == "" || date == "today" {
		return c.Today()
	}
	if _, err := utils.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// RefreshSnapshot recomputes the cached completion row for date. A failure is
// logged rather than returned because the record it follows was already saved.
func (c *Context) RefreshSnapshot(date string) {
	snap, err := engine.ComputeSnapshot(c.Store, date, c.Clock())
	if err != nil {
		logger.Warn("Failed to compute daily completion", "date", date, "error", err)
		return
	}
	if err := c.Store.SaveDailyCompletion(snap); err != nil {
		logger.Warn("Failed to save daily completion", "date", date, "error", err)
		return
	}
	logger.Debug("Daily completion refreshed", "date", date, "total", snap.TotalCompletion)
}

// BackupManager returns a manager for the SQLite file, or nil for stores
// that are not a local file.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	var dir string
	keep := backup.DefaultKeep
	if c.Config != nil {
		dir, keep = c.Config.BackupDir(), c.Config.Backup.Keep
	}
	return backup.NewManager(c.Store.GetConfigPath(), dir, keep)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func NewID() string {
	return uuid.NewString()
}
