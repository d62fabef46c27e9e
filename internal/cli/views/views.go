// Package views holds the read-only commands that summarize a day or month.
package views

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/tui/components/calendar"
	"github.com/julianstephens/lifelog/internal/tui/components/dashboard"
	"github.com/julianstephens/lifelog/internal/utils"
)

type TodayCmd struct {
	Date string `help:"Show this date instead of today (YYYY-MM-DD)."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	fmt.Println(dashboard.Render(dashboard.Load(ctx.Store, date)))
	return nil
}

type ScoreCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *ScoreCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	b, err := engine.ComputeBreakdown(ctx.Store, date)
	if err != nil {
		return err
	}

	fmt.Printf("Score for %s: %d%% (%s)\n", date, b.Total, engine.ClassifyScore(b.Total))
	fmt.Printf("  Dopamine: %4.0f pts  %s\n", b.DopaminePoints, orNotLogged(string(b.Dopamine)))
	fmt.Printf("  Workout:  %4.0f pts  %s\n", b.WorkoutPoints, orNotLogged(string(b.Workout)))
	fmt.Printf("  Hygiene:  %4.1f pts  %d/%d habits\n", b.HygienePoints, b.HabitsDone, b.HabitsTotal)
	return nil
}

func orNotLogged(s string) string {
	if s == "" {
		return "not logged"
	}
	return s
}

type CalendarCmd struct {
	Month  string `help:"Month in YYYY-MM format (default: this month)."`
	Domain string `help:"Which records colour the days: all, dopamine, hygiene or workout." enum:"all,dopamine,hygiene,workout" default:"all"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	domain, err := calendar.ParseDomain(c.Domain)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	var (
		year  int
		month time.Month
	)
	if c.Month == "" {
		t, err := utils.ParseDate(today)
		if err != nil {
			return err
		}
		year, month = t.Year(), t.Month()
	} else if year, month, err = utils.ParseMonth(c.Month); err != nil {
		return err
	}

	cells, err := engine.ClassifyMonth(ctx.Store, year, month, domain.Classifier())
	if err != nil {
		logger.Warn("Failed to classify some days", "month", fmt.Sprintf("%d-%02d", year, month), "error", err)
	}
	fmt.Println(calendar.Render(year, month, cells, today, domain))
	return nil
}
