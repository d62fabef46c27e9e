package storage

import (
	"fmt"

	"github.com/julianstephens/lifelog/internal/models"
)

// DataVersion is bumped whenever Data changes shape incompatibly.
const DataVersion = 1

// Data is the full content of a store: the JSON store's file format and the
// document written by `data export`.
type Data struct {
	Version            int                        `json:"version"`
	Settings           models.Settings            `json:"settings"`
	DopamineEntries    []models.DopamineEntry     `json:"dopamine_entries"`
	WorkoutEntries     []models.WorkoutEntry      `json:"workout_history"`
	WorkoutTemplates   []models.WorkoutTemplate   `json:"workout_templates"`
	WorkoutExercises   []models.WorkoutExercise   `json:"workout_exercises"`
	HygieneHabits      []models.HygieneHabit      `json:"hygiene_habits"`
	HygieneCompletions []models.HygieneCompletion `json:"hygiene_completions"`
	MoodEntries        []models.MoodEntry         `json:"mood_entries"`
	DailyCompletions   []models.DailyCompletion   `json:"daily_completion"`
}

// Dump reads every table of p.
func Dump(p Provider) (Data, error) {
	var (
		d   = Data{Version: DataVersion}
		err error
	)
	if d.Settings, err = p.GetSettings(); err != nil {
		return Data{}, fmt.Errorf("reading settings: %w", err)
	}
	if d.DopamineEntries, err = p.GetAllDopamineEntries(); err != nil {
		return Data{}, fmt.Errorf("reading dopamine entries: %w", err)
	}
	if d.WorkoutEntries, err = p.GetAllWorkoutEntries(); err != nil {
		return Data{}, fmt.Errorf("reading workout history: %w", err)
	}
	if d.WorkoutTemplates, err = p.GetAllWorkoutTemplates(); err != nil {
		return Data{}, fmt.Errorf("reading workout templates: %w", err)
	}
	if d.WorkoutExercises, err = p.GetAllWorkoutExercises(); err != nil {
		return Data{}, fmt.Errorf("reading workout exercises: %w", err)
	}
	if d.HygieneHabits, err = p.GetAllHygieneHabits(); err != nil {
		return Data{}, fmt.Errorf("reading hygiene habits: %w", err)
	}
	if d.HygieneCompletions, err = p.GetAllHygieneCompletions(); err != nil {
		return Data{}, fmt.Errorf("reading hygiene completions: %w", err)
	}
	if d.MoodEntries, err = p.GetAllMoodEntries(); err != nil {
		return Data{}, fmt.Errorf("reading mood entries: %w", err)
	}
	if d.DailyCompletions, err = p.GetAllDailyCompletions(); err != nil {
		return Data{}, fmt.Errorf("reading daily completions: %w", err)
	}
	return d, nil
}

// Restore writes every record of d into p through the normal upserts, parents
// before children. Existing rows with other keys are left alone.
func Restore(p Provider, d Data) error {
	if d.Version > DataVersion {
		return fmt.Errorf("data version %d is newer than supported version %d", d.Version, DataVersion)
	}

	if err := p.SaveSettings(d.Settings); err != nil {
		return fmt.Errorf("restoring settings: %w", err)
	}
	for _, e := range d.DopamineEntries {
		if err := p.SaveDopamineEntry(e); err != nil {
			return fmt.Errorf("restoring dopamine entry %s: %w", e.Date, err)
		}
	}
	for _, tpl := range d.WorkoutTemplates {
		if err := p.SaveWorkoutTemplate(tpl); err != nil {
			return fmt.Errorf("restoring template %s: %w", tpl.Name, err)
		}
	}
	for _, ex := range d.WorkoutExercises {
		if err := p.SaveWorkoutExercise(ex); err != nil {
			return fmt.Errorf("restoring exercise %s: %w", ex.Name, err)
		}
	}
	for _, w := range d.WorkoutEntries {
		if err := p.SaveWorkoutEntry(w); err != nil {
			return fmt.Errorf("restoring workout %s: %w", w.Date, err)
		}
	}
	for _, h := range d.HygieneHabits {
		if err := p.SaveHygieneHabit(h); err != nil {
			return fmt.Errorf("restoring habit %s: %w", h.Name, err)
		}
	}
	for _, c := range d.HygieneCompletions {
		if err := p.SaveHygieneCompletion(c); err != nil {
			return fmt.Errorf("restoring completion %s/%s: %w", c.HabitID, c.Date, err)
		}
	}
	for _, m := range d.MoodEntries {
		if err := p.SaveMoodEntry(m); err != nil {
			return fmt.Errorf("restoring mood %s: %w", m.Date, err)
		}
	}
	for _, dc := range d.DailyCompletions {
		if err := p.SaveDailyCompletion(dc); err != nil {
			return fmt.Errorf("restoring snapshot %s: %w", dc.Date, err)
		}
	}
	return nil
}
