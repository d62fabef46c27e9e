package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidRating      ConflictType = "invalid_rating"
	ConflictInvalidStatus      ConflictType = "invalid_status"
	ConflictDuplicateDate      ConflictType = "duplicate_date"
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictOrphanedCompletion ConflictType = "orphaned_completion"
	ConflictOrphanedExercise   ConflictType = "orphaned_exercise"
)

// Conflict is one malformed or inconsistent record
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	IDs         []string // IDs of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks stored records for values the scoring engine would
// silently tolerate.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateData checks every table of a dump.
func (v *Validator) ValidateData(d storage.Data) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.validateDopamine(&result, d.DopamineEntries)
	v.validateWorkouts(&result, d.WorkoutEntries)
	v.validateExercises(&result, d.WorkoutTemplates, d.WorkoutExercises)
	v.validateHygiene(&result, d.HygieneHabits, d.HygieneCompletions)
	v.validateMood(&result, d.MoodEntries)
	return result
}

func (v *Validator) validateDopamine(result *ValidationResult, entries []models.DopamineEntry) {
	dates := make(map[string][]string)
	for _, e := range entries {
		v.checkDate(result, "Dopamine entry", e.ID, e.Date)
		if !e.Status.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidStatus,
				Description: fmt.Sprintf("Dopamine entry %s has unknown status %q", e.ID, e.Status),
				Date:        e.Date,
				IDs:         []string{e.ID},
			})
		}
		dates[e.Date] = append(dates[e.Date], e.ID)
	}
	duplicateDates(result, "dopamine", dates)
}

func (v *Validator) validateWorkouts(result *ValidationResult, entries []models.WorkoutEntry) {
	dates := make(map[string][]string)
	for _, w := range entries {
		v.checkDate(result, "Workout entry", w.ID, w.Date)
		if !w.Type.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidStatus,
				Description: fmt.Sprintf("Workout entry %s has unknown type %q", w.ID, w.Type),
				Date:        w.Date,
				IDs:         []string{w.ID},
			})
		}
		dates[w.Date] = append(dates[w.Date], w.ID)
	}
	duplicateDates(result, "workout", dates)
}

func (v *Validator) validateExercises(result *ValidationResult, templates []models.WorkoutTemplate, exercises []models.WorkoutExercise) {
	known := make(map[string]bool, len(templates))
	for _, t := range templates {
		known[t.ID] = true
	}
	for _, e := range exercises {
		if !known[e.TemplateID] {
			result.add(Conflict{
				Type:        ConflictOrphanedExercise,
				Description: fmt.Sprintf("Exercise %q references missing template %s", e.Name, e.TemplateID),
				IDs:         []string{e.ID},
			})
		}
	}
}

func (v *Validator) validateHygiene(result *ValidationResult, habits []models.HygieneHabit, completions []models.HygieneCompletion) {
	known := make(map[string]bool, len(habits))
	names := make(map[string][]string)
	for _, h := range habits {
		known[h.ID] = true
		if h.Name == "" {
			continue
		}
		names[h.Name] = append(names[h.Name], h.ID)
	}
	for _, name := range sortedKeys(names) {
		if ids := names[name]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				IDs:         ids,
			})
		}
	}

	for _, c := range completions {
		v.checkDate(result, "Hygiene completion", c.ID, c.Date)
		if !known[c.HabitID] {
			result.add(Conflict{
				Type:        ConflictOrphanedCompletion,
				Description: fmt.Sprintf("Hygiene completion %s on %s references missing habit %s", c.ID, c.Date, c.HabitID),
				Date:        c.Date,
				IDs:         []string{c.ID},
			})
		}
	}
}

func (v *Validator) validateMood(result *ValidationResult, entries []models.MoodEntry) {
	dates := make(map[string][]string)
	for _, m := range entries {
		v.checkDate(result, "Mood entry", m.ID, m.Date)
		for _, r := range moodRatings(m) {
			if !validRating(r.value) {
				result.add(Conflict{
					Type:        ConflictInvalidRating,
					Description: fmt.Sprintf("Mood entry on %s has %s rating %d outside %d..%d", m.Date, r.name, r.value, models.MinRating, models.MaxRating),
					Date:        m.Date,
					IDs:         []string{m.ID},
				})
			}
		}
		dates[m.Date] = append(dates[m.Date], m.ID)
	}
	duplicateDates(result, "mood", dates)
}

func (v *Validator) checkDate(result *ValidationResult, kind, id, date string) {
	if _, err := utils.ParseDate(date); err != nil {
		result.add(Conflict{
			Type:        ConflictInvalidDate,
			Description: fmt.Sprintf("%s %s has invalid date: %q", kind, id, date),
			IDs:         []string{id},
		})
	}
}

func duplicateDates(result *ValidationResult, kind string, dates map[string][]string) {
	for _, date := range sortedKeys(dates) {
		if ids := dates[date]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("%d %s entries on %s (IDs: %v)", len(ids), kind, date, ids),
				Date:        date,
				IDs:         ids,
			})
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type rating struct {
	name  string
	value int
}

func moodRatings(m models.MoodEntry) []rating {
	return []rating{
		{"mood", m.Mood},
		{"energy", m.Energy},
		{"stress", m.Stress},
		{"ocd", m.OCD},
		{"numb", m.Numb},
	}
}

func validRating(r int) bool {
	return r >= models.MinRating && r <= models.MaxRating
}

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRating = errors.New("rating out of range")
)

// CheckDopamineEntry validates a single entry before it is written.
func CheckDopamineEntry(e models.DopamineEntry) error {
	if _, err := utils.ParseDate(e.Date); err != nil {
		return err
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w %q: want %s or %s", ErrInvalidStatus, e.Status, models.DopaminePassed, models.DopamineFailed)
	}
	return nil
}

func CheckWorkoutEntry(w models.WorkoutEntry) error {
	if _, err := utils.ParseDate(w.Date); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("%w %q: want %s, %s or %s", ErrInvalidStatus, w.Type, models.WorkoutCompleted, models.WorkoutRest, models.WorkoutMissed)
	}
	return nil
}

func CheckMoodEntry(m models.MoodEntry) error {
	if _, err := utils.ParseDate(m.Date); err != nil {
		return err
	}
	for _, r := range moodRatings(m) {
		if !validRating(r.value) {
			return fmt.Errorf("%w: %s is %d, want %d..%d", ErrInvalidRating, r.name, r.value, models.MinRating, models.MaxRating)
		}
	}
	return nil
}
