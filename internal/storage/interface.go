package storage

import (
	"errors"

	"github.com/julianstephens/lifelog/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record. It is the store's
	// only way of saying "absent"; any other error is a lookup failure.
	ErrNotFound = errors.New("record not found")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Dopamine entries. Save upserts on date.
	SaveDopamineEntry(models.DopamineEntry) error
	GetDopamineEntry(date string) (models.DopamineEntry, error)
	GetAllDopamineEntries() ([]models.DopamineEntry, error)
	GetRecentDopamineEntries(limit int) ([]models.DopamineEntry, error)
	DeleteDopamineEntry(id string) error

	// Workout history. Save upserts on date.
	SaveWorkoutEntry(models.WorkoutEntry) error
	GetWorkoutEntry(date string) (models.WorkoutEntry, error)
	GetAllWorkoutEntries() ([]models.WorkoutEntry, error)
	DeleteWorkoutEntry(id string) error

	// Workout templates. Deleting a template deletes its exercises.
	SaveWorkoutTemplate(models.WorkoutTemplate) error
	GetWorkoutTemplate(id string) (models.WorkoutTemplate, error)
	GetWorkoutTemplateByName(name string) (models.WorkoutTemplate, error)
	GetAllWorkoutTemplates() ([]models.WorkoutTemplate, error)
	DeleteWorkoutTemplate(id string) error

	// Workout exercises, looked up by template id
	SaveWorkoutExercise(models.WorkoutExercise) error
	GetWorkoutExercise(id string) (models.WorkoutExercise, error)
	GetExercisesForTemplate(templateID string) ([]models.WorkoutExercise, error)
	GetAllWorkoutExercises() ([]models.WorkoutExercise, error)
	DeleteWorkoutExercise(id string) error

	// Hygiene habits. Deleting a habit deletes its completions.
	SaveHygieneHabit(models.HygieneHabit) error
	GetHygieneHabit(id string) (models.HygieneHabit, error)
	GetHygieneHabitByName(name string) (models.HygieneHabit, error)
	GetAllHygieneHabits() ([]models.HygieneHabit, error)
	DeleteHygieneHabit(id string) error

	// Hygiene completions. Save upserts on (habit_id, date).
	SaveHygieneCompletion(models.HygieneCompletion) error
	GetHygieneCompletion(habitID, date string) (models.HygieneCompletion, error)
	GetHygieneCompletionsForDay(date string) ([]models.HygieneCompletion, error)
	GetHygieneCompletionsForHabit(habitID string) ([]models.HygieneCompletion, error)
	GetAllHygieneCompletions() ([]models.HygieneCompletion, error)
	DeleteHygieneCompletion(id string) error

	// Mood entries. Save upserts on date.
	SaveMoodEntry(models.MoodEntry) error
	GetMoodEntry(date string) (models.MoodEntry, error)
	GetRecentMoodEntries(limit int) ([]models.MoodEntry, error)
	GetAllMoodEntries() ([]models.MoodEntry, error)
	DeleteMoodEntry(id string) error

	// Daily completion snapshots. Save upserts on date.
	SaveDailyCompletion(models.DailyCompletion) error
	GetDailyCompletion(date string) (models.DailyCompletion, error)
	GetAllDailyCompletions() ([]models.DailyCompletion, error)

	// ClearAll removes every record but keeps settings
	ClearAll() error

	// Utils
	GetConfigPath() string
}
