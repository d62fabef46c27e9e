package tracking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

type HygieneCmd struct {
	Habit  HabitCmd         `cmd:"" help:"Manage hygiene habits."`
	Toggle HygieneToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Today  HygieneTodayCmd  `cmd:"" help:"Show a day's hygiene checklist."`
}

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completions."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Name of the habit."`
	Description string `help:"Optional description."`
	Category    string `help:"Optional category." default:"personal"`
	Difficulty  string `help:"Difficulty: easy, medium or hard." enum:"easy,medium,hard" default:"easy"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if _, err := ctx.Store.GetHygieneHabitByName(name); err == nil {
		return fmt.Errorf("habit %q already exists", name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check existing habits: %w", err)
	}

	habits, err := ctx.Store.GetAllHygieneHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	order := 1
	for _, h := range habits {
		order = max(order, h.Order+1)
	}

	habit := models.HygieneHabit{
		ID:          cli.NewID(),
		Name:        name,
		Description: c.Description,
		Order:       order,
		Category:    c.Category,
		Difficulty:  c.Difficulty,
		CreatedAt:   ctx.Clock(),
	}
	if err := ctx.Store.SaveHygieneHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("Added habit: %s\n", name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHygieneHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		line := fmt.Sprintf("%d. %s", h.Order, h.Name)
		if h.Description != "" {
			line += " - " + h.Description
		}
		fmt.Println(line)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Name of the habit."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHygieneHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	// Removing a habit changes the hygiene denominator for today.
	if today, err := ctx.Today(); err == nil {
		ctx.RefreshSnapshot(today)
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HygieneToggleCmd struct {
	Name string `arg:"" help:"Name of the habit."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HygieneToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	habit, err := findHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}

	completion, err := ctx.Store.GetHygieneCompletion(habit.ID, date)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		completion = models.HygieneCompletion{
			ID:        cli.NewID(),
			HabitID:   habit.ID,
			Date:      date,
			Completed: true,
			CreatedAt: ctx.Clock(),
		}
	case err != nil:
		return fmt.Errorf("failed to get habit completion: %w", err)
	default:
		completion.Completed = !completion.Completed
	}

	if err := ctx.Store.SaveHygieneCompletion(completion); err != nil {
		return fmt.Errorf("failed to save habit completion: %w", err)
	}
	ctx.RefreshSnapshot(date)

	state := "not done"
	if completion.Completed {
		state = "done"
	}
	fmt.Printf("%s marked %s for %s\n", habit.Name, state, date)
	return nil
}

type HygieneTodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HygieneTodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetAllHygieneHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	if len(habits) == 0 {
		fmt.Println("No habits found. Add one with 'lifelog hygiene habit add'.")
		return nil
	}
	completions, err := ctx.Store.GetHygieneCompletionsForDay(date)
	if err != nil {
		return fmt.Errorf("failed to get habit completions: %w", err)
	}

	done := make(map[string]bool, len(completions))
	for _, comp := range completions {
		if _, seen := done[comp.HabitID]; !seen {
			done[comp.HabitID] = comp.Completed
		}
	}

	fmt.Printf("Hygiene for %s\n", date)
	for _, h := range habits {
		mark := "[ ]"
		if done[h.ID] {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, h.Name)
	}

	percent, err := engine.ComputeHygieneCompletion(ctx.Store, date)
	if err != nil {
		return err
	}
	fmt.Printf("Completion: %d%%\n", percent)
	return nil
}

func findHabit(store storage.Provider, name string) (models.HygieneHabit, error) {
	habit, err := store.GetHygieneHabitByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return models.HygieneHabit{}, fmt.Errorf("habit %q not found", name)
	}
	if err != nil {
		return models.HygieneHabit{}, fmt.Errorf("failed to get habit: %w", err)
	}
	return habit, nil
}
