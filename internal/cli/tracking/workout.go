package tracking

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/report"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/validation"
)

type WorkoutCmd struct {
	Log      WorkoutLogCmd      `cmd:"" help:"Log a workout day as completed, rest or missed."`
	Complete WorkoutCompleteCmd `cmd:"" help:"Log a completed workout from a template with its sets."`
	Stats    WorkoutStatsCmd    `cmd:"" help:"Show weekly, monthly and streak stats."`
	List     WorkoutListCmd     `cmd:"" help:"List recent workout days."`
	Template TemplateCmd        `cmd:"" help:"Manage workout templates."`
	Exercise ExerciseCmd        `cmd:"" help:"Manage template exercises."`
}

type WorkoutLogCmd struct {
	Type     string `arg:"" enum:"completed,rest,missed" help:"Day type: completed, rest or missed."`
	Date     string `help:"Date in YYYY-MM-DD format (default: today)."`
	Notes    string `help:"Optional notes."`
	Duration int    `help:"Duration in minutes."`
	Template string `help:"Name of the template that was followed."`
}

func (c *WorkoutLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry := models.WorkoutEntry{
		ID:          cli.NewID(),
		Date:        date,
		Type:        models.WorkoutType(c.Type),
		Notes:       c.Notes,
		DurationMin: c.Duration,
		CreatedAt:   ctx.Clock(),
	}
	if c.Template != "" {
		tmpl, err := findTemplate(ctx.Store, c.Template)
		if err != nil {
			return err
		}
		entry.TemplateID = tmpl.ID
	}

	if err := saveWorkout(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("Logged workout for %s: %s\n", date, report.WorkoutLabel(entry.Type))
	return nil
}

type WorkoutCompleteCmd struct {
	Template string   `help:"Template that was performed." default:"${default_template}"`
	Set      []string `help:"A performed set as NAME=WEIGHTxREPS, repeatable." placeholder:"NAME=WEIGHTxREPS"`
	Date     string   `help:"Date in YYYY-MM-DD format (default: today)."`
	Notes    string   `help:"Optional notes."`
	Duration int      `help:"Duration in minutes."`
}

func (c *WorkoutCompleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	tmpl, err := findTemplate(ctx.Store, c.Template)
	if err != nil {
		return err
	}
	exercises, err := ctx.Store.GetExercisesForTemplate(tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to get exercises: %w", err)
	}

	logs, err := buildExerciseLogs(exercises, c.Set)
	if err != nil {
		return err
	}

	entry := models.WorkoutEntry{
		ID:          cli.NewID(),
		Date:        date,
		Type:        models.WorkoutCompleted,
		TemplateID:  tmpl.ID,
		Exercises:   logs,
		Notes:       c.Notes,
		DurationMin: c.Duration,
		CreatedAt:   ctx.Clock(),
	}
	if err := saveWorkout(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("Logged %s for %s (%d exercise(s))\n", tmpl.Name, date, len(logs))
	for _, ex := range exercises {
		best, ok := heaviestSet(logs, ex.Name)
		if !ok || best <= ex.PR {
			continue
		}
		ex.PR = best
		if err := ctx.Store.SaveWorkoutExercise(ex); err != nil {
			logger.Warn("Failed to update personal record", "exercise", ex.Name, "error", err)
			continue
		}
		fmt.Printf("  New PR for %s: %s\n", ex.Name, formatWeight(best))
	}
	return nil
}

// parseSet reads NAME=WEIGHTxREPS.
func parseSet(s string) (string, float64, int, error) {
	name, spec, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, 0, fmt.Errorf("invalid set %q: want NAME=WEIGHTxREPS", s)
	}
	w, r, ok := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), "x")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid set %q: want NAME=WEIGHTxREPS", s)
	}
	weight, err := strconv.ParseFloat(w, 64)
	if err != nil || weight < 0 {
		return "", 0, 0, fmt.Errorf("invalid weight in set %q", s)
	}
	reps, err := strconv.Atoi(r)
	if err != nil || reps <= 0 {
		return "", 0, 0, fmt.Errorf("invalid reps in set %q", s)
	}
	return name, weight, reps, nil
}

// buildExerciseLogs groups sets under the template's exercises, in template order.
func buildExerciseLogs(exercises []models.WorkoutExercise, sets []string) ([]models.ExerciseLog, error) {
	byName := make(map[string][]models.SetLog)
	for _, s := range sets {
		name, weight, reps, err := parseSet(s)
		if err != nil {
			return nil, err
		}
		idx := slices.IndexFunc(exercises, func(e models.WorkoutExercise) bool {
			return strings.EqualFold(e.Name, name)
		})
		if idx < 0 {
			return nil, fmt.Errorf("exercise %q is not part of this template", name)
		}
		canonical := exercises[idx].Name
		byName[canonical] = append(byName[canonical], models.SetLog{
			SetNumber: len(byName[canonical]) + 1,
			Weight:    weight,
			Reps:      reps,
		})
	}

	var logs []models.ExerciseLog
	for _, e := range exercises {
		if s, ok := byName[e.Name]; ok {
			logs = append(logs, models.ExerciseLog{Name: e.Name, Sets: s})
		}
	}
	return logs, nil
}

func heaviestSet(logs []models.ExerciseLog, name string) (float64, bool) {
	var best float64
	found := false
	for _, l := range logs {
		if l.Name != name {
			continue
		}
		for _, s := range l.Sets {
			if !found || s.Weight > best {
				best, found = s.Weight, true
			}
		}
	}
	return best, found
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func saveWorkout(ctx *cli.Context, entry models.WorkoutEntry) error {
	if err := validation.CheckWorkoutEntry(entry); err != nil {
		return err
	}
	if err := ctx.Store.SaveWorkoutEntry(entry); err != nil {
		return fmt.Errorf("failed to save workout entry: %w", err)
	}
	ctx.RefreshSnapshot(entry.Date)
	return nil
}

type WorkoutStatsCmd struct {
	Date string `help:"Compute stats as of this date (default: today)."`
}

func (c *WorkoutStatsCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	stats, err := engine.ComputeWorkoutStats(ctx.Store, date)
	if err != nil {
		return err
	}

	fmt.Printf("Workout stats as of %s\n", date)
	fmt.Printf("  This week:      %d\n", stats.WeeklyCompleted)
	fmt.Printf("  This month:     %d\n", stats.MonthlyCompleted)
	fmt.Printf("  All time:       %d\n", stats.TotalCompleted)
	fmt.Printf("  Consistency:    %d%%\n", stats.Consistency)
	fmt.Printf("  Current streak: %d day(s)\n", stats.CurrentStreak)
	return nil
}

type WorkoutListCmd struct {
	Limit int `help:"Number of days to show." default:"10"`
}

func (c *WorkoutListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllWorkoutEntries()
	if err != nil {
		return fmt.Errorf("failed to get workout entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No workouts found.")
		return nil
	}

	slices.SortStableFunc(entries, func(a, b models.WorkoutEntry) int { return strings.Compare(b.Date, a.Date) })
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	templates := make(map[string]string)
	if all, err := ctx.Store.GetAllWorkoutTemplates(); err == nil {
		for _, t := range all {
			templates[t.ID] = t.Name
		}
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s", e.Date, report.WorkoutLabel(e.Type))
		if name := templates[e.TemplateID]; name != "" {
			line += "  (" + name + ")"
		}
		if e.DurationMin > 0 {
			line += fmt.Sprintf("  %dm", e.DurationMin)
		}
		if e.Notes != "" {
			line += "  " + e.Notes
		}
		fmt.Println(line)
	}
	return nil
}

func findTemplate(store storage.Provider, name string) (models.WorkoutTemplate, error) {
	tmpl, err := store.GetWorkoutTemplateByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return models.WorkoutTemplate{}, fmt.Errorf("workout template %q not found", name)
	}
	if err != nil {
		return models.WorkoutTemplate{}, fmt.Errorf("failed to get workout template: %w", err)
	}
	return tmpl, nil
}
