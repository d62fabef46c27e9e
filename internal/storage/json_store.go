package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
)

// JSONStore keeps every table in memory and, when it has a path, rewrites the
// whole document on each change. An empty path gives a purely in-memory store.
type JSONStore struct {
	path string
	mu   sync.RWMutex
	data *Data
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// NewMemoryStore returns an initialized store that never touches disk.
func NewMemoryStore() *JSONStore {
	s := &JSONStore{}
	s.data = &Data{Version: DataVersion, Settings: models.DefaultSettings()}
	return s
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if _, err := os.Stat(s.path); err == nil {
			return fmt.Errorf("storage already initialized at %s", s.path)
		}
	}
	s.data = &Data{Version: DataVersion, Settings: models.DefaultSettings()}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'lifelog init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if d.Version > DataVersion {
		return fmt.Errorf("storage version %d is newer than supported version %d", d.Version, DataVersion)
	}
	s.data = &d
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// save must be called with mu held for writing.
func (s *JSONStore) save() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// read runs fn under the read lock once the store is loaded.
func (s *JSONStore) read(fn func(d *Data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return ErrNotLoaded
	}
	return fn(s.data)
}

// write runs fn under the write lock and persists the result if fn succeeds.
func (s *JSONStore) write(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrNotLoaded
	}
	if err := fn(s.data); err != nil {
		return err
	}
	return s.save()
}

// upsert replaces the first row matching same, keeping its ID, or appends row.
func upsert[T any](rows []T, row T, same func(T) bool, keepID func(old T, row *T)) []T {
	for i := range rows {
		if same(rows[i]) {
			keepID(rows[i], &row)
			rows[i] = row
			return rows
		}
	}
	return append(rows, row)
}

func first[T any](rows []T, match func(T) bool) (T, error) {
	for _, r := range rows {
		if match(r) {
			return r, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func filter[T any](rows []T, match func(T) bool) []T {
	var out []T
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func removeByID[T any](rows []T, id, kind string, idOf func(T) string) ([]T, error) {
	for i, r := range rows {
		if idOf(r) == id {
			return slices.Delete(rows, i, i+1), nil
		}
	}
	return rows, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC().Truncate(time.Second)
	}
	return t
}

func byDate[T any](rows []T, date func(T) string) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int { return strings.Compare(date(a), date(b)) })
	return out
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	var out models.Settings
	err := s.read(func(d *Data) error {
		out = d.Settings
		return nil
	})
	return out, err
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	return s.write(func(d *Data) error {
		d.Settings = settings
		return nil
	})
}

func (s *JSONStore) SaveDopamineEntry(e models.DopamineEntry) error {
	e.CreatedAt = stamp(e.CreatedAt)
	return s.write(func(d *Data) error {
		d.DopamineEntries = upsert(d.DopamineEntries, e,
			func(o models.DopamineEntry) bool { return o.Date == e.Date },
			func(o models.DopamineEntry, n *models.DopamineEntry) { n.ID = o.ID })
		return nil
	})
}

func (s *JSONStore) GetDopamineEntry(date string) (models.DopamineEntry, error) {
	var out models.DopamineEntry
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.DopamineEntries, func(e models.DopamineEntry) bool { return e.Date == date })
		return err
	})
	return out, err
}

func (s *JSONStore) GetAllDopamineEntries() ([]models.DopamineEntry, error) {
	var out []models.DopamineEntry
	err := s.read(func(d *Data) error {
		out = byDate(d.DopamineEntries, func(e models.DopamineEntry) string { return e.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) GetRecentDopamineEntries(limit int) ([]models.DopamineEntry, error) {
	all, err := s.GetAllDopamineEntries()
	if err != nil {
		return nil, err
	}
	slices.Reverse(all)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *JSONStore) DeleteDopamineEntry(id string) error {
	return s.write(func(d *Data) (err error) {
		d.DopamineEntries, err = removeByID(d.DopamineEntries, id, "dopamine_entries",
			func(e models.DopamineEntry) string { return e.ID })
		return err
	})
}

func (s *JSONStore) SaveWorkoutEntry(w models.WorkoutEntry) error {
	w.CreatedAt = stamp(w.CreatedAt)
	return s.write(func(d *Data) error {
		d.WorkoutEntries = upsert(d.WorkoutEntries, w,
			func(o models.WorkoutEntry) bool { return o.Date == w.Date },
			func(o models.WorkoutEntry, n *models.WorkoutEntry) { n.ID = o.ID })
		return nil
	})
}

func (s *JSONStore) GetWorkoutEntry(date string) (models.WorkoutEntry, error) {
	var out models.WorkoutEntry
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.WorkoutEntries, func(w models.WorkoutEntry) bool { return w.Date == date })
		return err
	})
	return out, err
}

func (s *JSONStore) GetAllWorkoutEntries() ([]models.WorkoutEntry, error) {
	var out []models.WorkoutEntry
	err := s.read(func(d *Data) error {
		out = byDate(d.WorkoutEntries, func(w models.WorkoutEntry) string { return w.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteWorkoutEntry(id string) error {
	return s.write(func(d *Data) (err error) {
		d.WorkoutEntries, err = removeByID(d.WorkoutEntries, id, "workout_history",
			func(w models.WorkoutEntry) string { return w.ID })
		return err
	})
}

func (s *JSONStore) SaveWorkoutTemplate(t models.WorkoutTemplate) error {
	t.CreatedAt = stamp(t.CreatedAt)
	return s.write(func(d *Data) error {
		d.WorkoutTemplates = upsert(d.WorkoutTemplates, t,
			func(o models.WorkoutTemplate) bool { return o.ID == t.ID },
			func(o models.WorkoutTemplate, n *models.WorkoutTemplate) { n.CreatedAt = o.CreatedAt })
		return nil
	})
}

func (s *JSONStore) GetWorkoutTemplate(id string) (models.WorkoutTemplate, error) {
	var out models.WorkoutTemplate
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.WorkoutTemplates, func(t models.WorkoutTemplate) bool { return t.ID == id })
		return err
	})
	return out, err
}

func (s *JSONStore) GetWorkoutTemplateByName(name string) (models.WorkoutTemplate, error) {
	var out models.WorkoutTemplate
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.WorkoutTemplates, func(t models.WorkoutTemplate) bool { return t.Name == name })
		return err
	})
	return out, err
}

func (s *JSONStore) GetAllWorkoutTemplates() ([]models.WorkoutTemplate, error) {
	var out []models.WorkoutTemplate
	err := s.read(func(d *Data) error {
		out = slices.Clone(d.WorkoutTemplates)
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteWorkoutTemplate(id string) error {
	return s.write(func(d *Data) (err error) {
		d.WorkoutTemplates, err = removeByID(d.WorkoutTemplates, id, "workout_templates",
			func(t models.WorkoutTemplate) string { return t.ID })
		if err != nil {
			return err
		}
		d.WorkoutExercises = filter(d.WorkoutExercises, func(e models.WorkoutExercise) bool { return e.TemplateID != id })
		return nil
	})
}

func (s *JSONStore) SaveWorkoutExercise(e models.WorkoutExercise) error {
	e.CreatedAt = stamp(e.CreatedAt)
	return s.write(func(d *Data) error {
		d.WorkoutExercises = upsert(d.WorkoutExercises, e,
			func(o models.WorkoutExercise) bool { return o.ID == e.ID },
			func(o models.WorkoutExercise, n *models.WorkoutExercise) { n.CreatedAt = o.CreatedAt })
		return nil
	})
}

func (s *JSONStore) GetWorkoutExercise(id string) (models.WorkoutExercise, error) {
	var out models.WorkoutExercise
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.WorkoutExercises, func(e models.WorkoutExercise) bool { return e.ID == id })
		return err
	})
	return out, err
}

func (s *JSONStore) GetExercisesForTemplate(templateID string) ([]models.WorkoutExercise, error) {
	var out []models.WorkoutExercise
	err := s.read(func(d *Data) error {
		out = filter(d.WorkoutExercises, func(e models.WorkoutExercise) bool { return e.TemplateID == templateID })
		slices.SortStableFunc(out, func(a, b models.WorkoutExercise) int { return a.Order - b.Order })
		return nil
	})
	return out, err
}

func (s *JSONStore) GetAllWorkoutExercises() ([]models.WorkoutExercise, error) {
	var out []models.WorkoutExercise
	err := s.read(func(d *Data) error {
		out = slices.Clone(d.WorkoutExercises)
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteWorkoutExercise(id string) error {
	return s.write(func(d *Data) (err error) {
		d.WorkoutExercises, err = removeByID(d.WorkoutExercises, id, "workout_exercises",
			func(e models.WorkoutExercise) string { return e.ID })
		return err
	})
}

func (s *JSONStore) SaveHygieneHabit(h models.HygieneHabit) error {
	h.CreatedAt = stamp(h.CreatedAt)
	return s.write(func(d *Data) error {
		d.HygieneHabits = upsert(d.HygieneHabits, h,
			func(o models.HygieneHabit) bool { return o.ID == h.ID },
			func(o models.HygieneHabit, n *models.HygieneHabit) { n.CreatedAt = o.CreatedAt })
		return nil
	})
}

func (s *JSONStore) GetHygieneHabit(id string) (models.HygieneHabit, error) {
	var out models.HygieneHabit
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.HygieneHabits, func(h models.HygieneHabit) bool { return h.ID == id })
		return err
	})
	return out, err
}

func (s *JSONStore) GetHygieneHabitByName(name string) (models.HygieneHabit, error) {
	var out models.HygieneHabit
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.HygieneHabits, func(h models.HygieneHabit) bool { return h.Name == name })
		return err
	})
	return out, err
}

func (s *JSONStore) GetAllHygieneHabits() ([]models.HygieneHabit, error) {
	var out []models.HygieneHabit
	err := s.read(func(d *Data) error {
		out = slices.Clone(d.HygieneHabits)
		slices.SortStableFunc(out, func(a, b models.HygieneHabit) int { return a.Order - b.Order })
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteHygieneHabit(id string) error {
	return s.write(func(d *Data) (err error) {
		d.HygieneHabits, err = removeByID(d.HygieneHabits, id, "hygiene_habits",
			func(h models.HygieneHabit) string { return h.ID })
		if err != nil {
			return err
		}
		d.HygieneCompletions = filter(d.HygieneCompletions, func(c models.HygieneCompletion) bool { return c.HabitID != id })
		return nil
	})
}

func (s *JSONStore) SaveHygieneCompletion(c models.HygieneCompletion) error {
	c.CreatedAt = stamp(c.CreatedAt)
	return s.write(func(d *Data) error {
		d.HygieneCompletions = upsert(d.HygieneCompletions, c,
			func(o models.HygieneCompletion) bool { return o.HabitID == c.HabitID && o.Date == c.Date },
			func(o models.HygieneCompletion, n *models.HygieneCompletion) { n.ID = o.ID })
		return nil
	})
}

func (s *JSONStore) GetHygieneCompletion(habitID, date string) (models.HygieneCompletion, error) {
	var out models.HygieneCompletion
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.HygieneCompletions, func(c models.HygieneCompletion) bool {
			return c.HabitID == habitID && c.Date == date
		})
		return err
	})
	return out, err
}

func (s *JSONStore) GetHygieneCompletionsForDay(date string) ([]models.HygieneCompletion, error) {
	var out []models.HygieneCompletion
	err := s.read(func(d *Data) error {
		out = filter(d.HygieneCompletions, func(c models.HygieneCompletion) bool { return c.Date == date })
		return nil
	})
	return out, err
}

func (s *JSONStore) GetHygieneCompletionsForHabit(habitID string) ([]models.HygieneCompletion, error) {
	var out []models.HygieneCompletion
	err := s.read(func(d *Data) error {
		out = byDate(filter(d.HygieneCompletions, func(c models.HygieneCompletion) bool { return c.HabitID == habitID }),
			func(c models.HygieneCompletion) string { return c.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) GetAllHygieneCompletions() ([]models.HygieneCompletion, error) {
	var out []models.HygieneCompletion
	err := s.read(func(d *Data) error {
		out = byDate(d.HygieneCompletions, func(c models.HygieneCompletion) string { return c.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteHygieneCompletion(id string) error {
	return s.write(func(d *Data) (err error) {
		d.HygieneCompletions, err = removeByID(d.HygieneCompletions, id, "hygiene_completions",
			func(c models.HygieneCompletion) string { return c.ID })
		return err
	})
}

func (s *JSONStore) SaveMoodEntry(m models.MoodEntry) error {
	m.CreatedAt = stamp(m.CreatedAt)
	return s.write(func(d *Data) error {
		d.MoodEntries = upsert(d.MoodEntries, m,
			func(o models.MoodEntry) bool { return o.Date == m.Date },
			func(o models.MoodEntry, n *models.MoodEntry) { n.ID = o.ID })
		return nil
	})
}

func (s *JSONStore) GetMoodEntry(date string) (models.MoodEntry, error) {
	var out models.MoodEntry
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.MoodEntries, func(m models.MoodEntry) bool { return m.Date == date })
		return err
	})
	return out, err
}

func (s *JSONStore) GetRecentMoodEntries(limit int) ([]models.MoodEntry, error) {
	all, err := s.GetAllMoodEntries()
	if err != nil {
		return nil, err
	}
	slices.Reverse(all)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *JSONStore) GetAllMoodEntries() ([]models.MoodEntry, error) {
	var out []models.MoodEntry
	err := s.read(func(d *Data) error {
		out = byDate(d.MoodEntries, func(m models.MoodEntry) string { return m.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) DeleteMoodEntry(id string) error {
	return s.write(func(d *Data) (err error) {
		d.MoodEntries, err = removeByID(d.MoodEntries, id, "mood_entries",
			func(m models.MoodEntry) string { return m.ID })
		return err
	})
}

func (s *JSONStore) SaveDailyCompletion(dc models.DailyCompletion) error {
	dc.UpdatedAt = stamp(dc.UpdatedAt)
	return s.write(func(d *Data) error {
		d.DailyCompletions = upsert(d.DailyCompletions, dc,
			func(o models.DailyCompletion) bool { return o.Date == dc.Date },
			func(models.DailyCompletion, *models.DailyCompletion) {})
		return nil
	})
}

func (s *JSONStore) GetDailyCompletion(date string) (models.DailyCompletion, error) {
	var out models.DailyCompletion
	err := s.read(func(d *Data) (err error) {
		out, err = first(d.DailyCompletions, func(dc models.DailyCompletion) bool { return dc.Date == date })
		return err
	})
	return out, err
}

func (s *JSONStore) GetAllDailyCompletions() ([]models.DailyCompletion, error) {
	var out []models.DailyCompletion
	err := s.read(func(d *Data) error {
		out = byDate(d.DailyCompletions, func(dc models.DailyCompletion) string { return dc.Date })
		return nil
	})
	return out, err
}

func (s *JSONStore) ClearAll() error {
	return s.write(func(d *Data) error {
		*d = Data{Version: d.Version, Settings: d.Settings}
		return nil
	})
}

var _ Provider = (*JSONStore)(nil)
