package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifelog/internal/models"
)

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

func ratingSelect(title string, value *int) *huh.Select[int] {
	opts := make([]huh.Option[int], 0, models.MaxRating)
	for i := models.MinRating; i <= models.MaxRating; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	return huh.NewSelect[int]().Title(title).Options(opts...).Value(value)
}

func newMoodForm(e *models.MoodEntry) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			ratingSelect("Mood", &e.Mood),
			ratingSelect("Energy", &e.Energy),
			ratingSelect("Stress", &e.Stress),
			ratingSelect("OCD", &e.OCD),
			ratingSelect("Numb", &e.Numb),
			huh.NewInput().
				Title("Notes").
				Value(&e.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}
