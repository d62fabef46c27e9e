// Package reports holds the commands that build and deliver the daily report.
package reports

import (
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/report"
	"github.com/julianstephens/lifelog/internal/scheduler"
)

type ReportCmd struct {
	Show ReportShowCmd `cmd:"" help:"Print the daily report."`
	Copy ReportCopyCmd `cmd:"" help:"Copy the daily report to the clipboard."`
	Send ReportSendCmd `cmd:"" help:"Send the daily report through the lifelog-tray app (installed separately), falling back to the clipboard."`
	Auto ReportAutoCmd `cmd:"" help:"Send today's report once it is due. Meant for cron or a login hook."`
}

func buildReport(ctx *cli.Context, date string) (report.DailyReport, error) {
	date, err := ctx.ResolveDate(date)
	if err != nil {
		return report.DailyReport{}, err
	}
	return report.BuildDailyReport(ctx.Store, date)
}

type ReportShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *ReportShowCmd) Run(ctx *cli.Context) error {
	rep, err := buildReport(ctx, c.Date)
	if err != nil {
		return err
	}
	fmt.Println(rep.Title())
	fmt.Println()
	fmt.Println(rep.FormatTable())
	return nil
}

type ReportCopyCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *ReportCopyCmd) Run(ctx *cli.Context) error {
	rep, err := buildReport(ctx, c.Date)
	if err != nil {
		return err
	}
	if err := report.Copy(rep, ctx.Clipboard); err != nil {
		return err
	}
	fmt.Printf("Report for %s copied to clipboard\n", rep.Date)
	return nil
}

type ReportSendCmd struct {
	Date       string `help:"Date in YYYY-MM-DD format (default: today)."`
	NoFallback bool   `help:"Fail instead of copying to the clipboard when lifelog-tray is not running."`
}

func (c *ReportSendCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return fmt.Errorf("%w, enable them with 'lifelog settings set --notifications'", report.ErrNotificationsDisabled)
	}

	rep, err := buildReport(ctx, c.Date)
	if err != nil {
		return err
	}

	if c.NoFallback {
		if err := report.Send(rep, ctx.Notifier); err != nil {
			return err
		}
		fmt.Printf("Report for %s sent\n", rep.Date)
		return nil
	}

	method, err := report.Deliver(rep, ctx.Notifier, ctx.Clipboard)
	if err != nil {
		return err
	}
	fmt.Printf("Report for %s delivered via %s\n", rep.Date, method)
	return nil
}

type ReportAutoCmd struct{}

func (c *ReportAutoCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	sched, err := scheduler.FromSettings(settings, loc)
	if err != nil {
		return err
	}

	now := ctx.Clock()
	sent, err := report.RunAuto(ctx.Store, sched, ctx.Notifier, ctx.Clipboard, now)
	if err != nil {
		return err
	}
	if sent {
		fmt.Printf("Daily report for %s delivered\n", sched.Today(now))
		return nil
	}

	next := sched.Next(now, settings.LastReportDate)
	fmt.Printf("Daily report not due, next at %s\n", next.In(loc).Format("2006-01-02 15:04"))
	return nil
}
