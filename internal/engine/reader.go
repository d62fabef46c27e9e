// Package engine derives scores, streaks and calendar classes from logged
// records. Every function is a pure read over a RecordReader; nothing here
// writes to the store or keeps state between calls.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/utils"
)

// RecordReader is the read surface the engine needs. Per-date lookups return
// storage.ErrNotFound for a day with no record; any other error is treated
// as a failed lookup. storage.Provider satisfies it.
type RecordReader interface {
	GetDopamineEntry(date string) (models.DopamineEntry, error)
	GetAllDopamineEntries() ([]models.DopamineEntry, error)
	GetWorkoutEntry(date string) (models.WorkoutEntry, error)
	GetAllWorkoutEntries() ([]models.WorkoutEntry, error)
	GetAllHygieneHabits() ([]models.HygieneHabit, error)
	GetHygieneCompletionsForDay(date string) ([]models.HygieneCompletion, error)
}

// LookupError reports a store query that could not be answered.
type LookupError struct {
	Op   string
	Date string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Date, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func lookupErr(op, date string, err error) error {
	return &LookupError{Op: op, Date: date, Err: err}
}

func parseDate(date string) (time.Time, error) {
	return utils.ParseDate(date)
}

// dopamineOn returns the day's entry, with ok=false when none was logged.
func dopamineOn(r RecordReader, date string) (models.DopamineEntry, bool, error) {
	e, err := r.GetDopamineEntry(date)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DopamineEntry{}, false, nil
	}
	if err != nil {
		return models.DopamineEntry{}, false, lookupErr("dopamine lookup", date, err)
	}
	return e, true, nil
}

func workoutOn(r RecordReader, date string) (models.WorkoutEntry, bool, error) {
	w, err := r.GetWorkoutEntry(date)
	if errors.Is(err, storage.ErrNotFound) {
		return models.WorkoutEntry{}, false, nil
	}
	if err != nil {
		return models.WorkoutEntry{}, false, lookupErr("workout lookup", date, err)
	}
	return w, true, nil
}

// hygieneOn counts defined habits and those completed on date. Completions
// for habits that no longer exist are ignored, and when a habit has more than
// one completion for the day the first one returned wins.
func hygieneOn(r RecordReader, date string) (done, total int, err error) {
	habits, err := r.GetAllHygieneHabits()
	if err != nil {
		return 0, 0, lookupErr("hygiene habits lookup", "", err)
	}
	if len(habits) == 0 {
		return 0, 0, nil
	}
	completions, err := r.GetHygieneCompletionsForDay(date)
	if err != nil {
		return 0, 0, lookupErr("hygiene completions lookup", date, err)
	}

	seen := make(map[string]bool, len(completions))
	completed := make(map[string]bool, len(completions))
	for _, c := range completions {
		if seen[c.HabitID] {
			continue
		}
		seen[c.HabitID] = true
		completed[c.HabitID] = c.Completed
	}
	for _, h := range habits {
		if completed[h.ID] {
			done++
		}
	}
	return done, len(habits), nil
}
