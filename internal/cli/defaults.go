package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

const DefaultTemplateName = "Full Body Workout"

var defaultHabits = []models.HygieneHabit{
	{Name: "Brush Teeth", Description: "Morning and evening routine", Category: "personal", Difficulty: "easy"},
	{Name: "Face Wash", Description: "Cleanse and refresh your skin", Category: "personal", Difficulty: "easy"},
	{Name: "Bath / Shower", Description: "Full body cleanse", Category: "personal", Difficulty: "medium"},
	{Name: "Hair Care", Description: "Style and maintain hair", Category: "personal", Difficulty: "easy"},
	{Name: "Perfume / Cologne", Description: "Apply your favorite scent", Category: "personal", Difficulty: "easy"},
}

var defaultExercises = []models.WorkoutExercise{
	{Name: "Squats", TargetSets: 3, TargetReps: 10},
	{Name: "Push-ups", TargetSets: 3, TargetReps: 15},
	{Name: "Pull-ups", TargetSets: 3, TargetReps: 8},
}

// SeedDefaults adds the starter hygiene habits when none exist and the
// starter workout template when there are no templates. It reports how many
// records were written.
func SeedDefaults(store storage.Provider, now time.Time) (int, error) {
	written := 0

	habits, err := store.GetAllHygieneHabits()
	if err != nil {
		return 0, fmt.Errorf("failed to get habits: %w", err)
	}
	if len(habits) == 0 {
		for i, h := range defaultHabits {
			h.ID = NewID()
			h.Order = i + 1
			h.CreatedAt = now
			if err := store.SaveHygieneHabit(h); err != nil {
				return written, fmt.Errorf("failed to add habit %q: %w", h.Name, err)
			}
			written++
		}
	}

	templates, err := store.GetAllWorkoutTemplates()
	if err != nil {
		return written, fmt.Errorf("failed to get workout templates: %w", err)
	}
	if len(templates) > 0 {
		return written, nil
	}

	tmpl := models.WorkoutTemplate{ID: NewID(), Name: DefaultTemplateName, Category: "strength", CreatedAt: now}
	if err := store.SaveWorkoutTemplate(tmpl); err != nil {
		return written, fmt.Errorf("failed to add workout template: %w", err)
	}
	written++
	for i, e := range defaultExercises {
		e.ID = NewID()
		e.TemplateID = tmpl.ID
		e.Order = i + 1
		e.CreatedAt = now
		if err := store.SaveWorkoutExercise(e); err != nil {
			return written, fmt.Errorf("failed to add exercise %q: %w", e.Name, err)
		}
		written++
	}
	return written, nil
}
