package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/scheduler"
)

// Method names how a report was delivered.
type Method string

const (
	MethodNotifier  Method = "notifier"
	MethodClipboard Method = "clipboard"
)

// Notifier pushes a message to the desktop tray app.
type Notifier interface {
	Notify(title, text string) error
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(text string) error

// SystemClipboard writes to the OS clipboard.
var SystemClipboard ClipboardWriter = clipboard.WriteAll

var ErrNotificationsDisabled = errors.New("notifications are disabled in settings")

func Copy(rep DailyReport, write ClipboardWriter) error {
	if err := write(rep.FormatTable()); err != nil {
		return fmt.Errorf("copying report to clipboard: %w", err)
	}
	return nil
}

func Send(rep DailyReport, n Notifier) error {
	if err := n.Notify(rep.Title(), rep.FormatTable()); err != nil {
		return fmt.Errorf("sending report: %w", err)
	}
	return nil
}

// Deliver sends the report to the notifier and falls back to the clipboard
// when that fails. The notifier is skipped when n is nil.
func Deliver(rep DailyReport, n Notifier, write ClipboardWriter) (Method, error) {
	if n != nil {
		sendErr := Send(rep, n)
		if sendErr == nil {
			return MethodNotifier, nil
		}
		logger.Warn("Report notification failed, copying to clipboard", "date", rep.Date, "error", sendErr)
		if err := Copy(rep, write); err != nil {
			return "", errors.Join(sendErr, err)
		}
		return MethodClipboard, nil
	}
	if err := Copy(rep, write); err != nil {
		return "", err
	}
	return MethodClipboard, nil
}

// AutoStore is the store surface needed by RunAuto.
type AutoStore interface {
	Reader
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// RunAuto sends today's report if it is due and records the date so it goes
// out at most once a day. It returns false when nothing was due.
func RunAuto(store AutoStore, sched *scheduler.Scheduler, n Notifier, write ClipboardWriter, now time.Time) (bool, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return false, fmt.Errorf("reading settings: %w", err)
	}
	if !sched.Due(now, settings.LastReportDate) {
		logger.Debug("Daily report not due", "last", settings.LastReportDate)
		return false, nil
	}
	if !settings.NotificationsEnabled {
		n = nil
	}

	today := sched.Today(now)
	rep, err := BuildDailyReport(store, today)
	if err != nil {
		return false, err
	}
	method, err := Deliver(rep, n, write)
	if err != nil {
		return false, err
	}

	settings.LastReportDate = today
	if err := store.SaveSettings(settings); err != nil {
		return true, fmt.Errorf("recording report date: %w", err)
	}
	logger.Info("Daily report delivered", "date", today, "method", method)
	return true, nil
}
