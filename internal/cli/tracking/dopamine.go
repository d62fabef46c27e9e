// Package tracking holds the commands that log and inspect the daily
// dopamine, workout, hygiene and mood records.
package tracking

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/report"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/validation"
)

type DopamineCmd struct {
	Log    DopamineLogCmd    `cmd:"" help:"Log a day of dopamine control."`
	Show   DopamineShowCmd   `cmd:"" help:"Show a day's dopamine entry."`
	Streak DopamineStreakCmd `cmd:"" help:"Show current and longest streaks."`
	List   DopamineListCmd   `cmd:"" help:"List recent entries."`
}

type DopamineLogCmd struct {
	Status string `arg:"" enum:"passed,failed" help:"Day outcome: passed or failed."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Notes  string `help:"Optional notes."`
}

func (c *DopamineLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry := models.DopamineEntry{
		ID:        cli.NewID(),
		Date:      date,
		Status:    models.DopamineStatus(c.Status),
		Notes:     c.Notes,
		CreatedAt: ctx.Clock(),
	}
	if err := validation.CheckDopamineEntry(entry); err != nil {
		return err
	}
	if err := ctx.Store.SaveDopamineEntry(entry); err != nil {
		return fmt.Errorf("failed to save dopamine entry: %w", err)
	}
	ctx.RefreshSnapshot(date)

	fmt.Printf("Logged dopamine control for %s: %s\n", date, report.DopamineLabel(entry.Status))
	return nil
}

type DopamineShowCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *DopamineShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetDopamineEntry(date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("%s: %s\n", date, report.DopamineLabel(""))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get dopamine entry: %w", err)
	}

	fmt.Printf("%s: %s\n", date, report.DopamineLabel(entry.Status))
	if entry.Notes != "" {
		fmt.Printf("  Notes: %s\n", entry.Notes)
	}
	return nil
}

type DopamineStreakCmd struct {
	Date string `help:"Count the current streak back from this date (default: today)."`
}

func (c *DopamineStreakCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	current, err := engine.ComputeCurrentStreak(ctx.Store, date)
	if err != nil {
		return err
	}
	longest, err := engine.ComputeLongestStreak(ctx.Store)
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", current)
	fmt.Printf("Longest streak: %d day(s)\n", longest)
	return nil
}

type DopamineListCmd struct {
	Limit int `help:"Number of entries to show." default:"10"`
}

func (c *DopamineListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetRecentDopamineEntries(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to get dopamine entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No dopamine entries found.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s", e.Date, report.DopamineLabel(e.Status))
		if e.Notes != "" {
			line += "  " + e.Notes
		}
		fmt.Println(line)
	}
	return nil
}
