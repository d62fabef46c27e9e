package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "lifelog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInitCreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{
		"settings", "dopamine_entries", "workout_history", "workout_templates",
		"workout_exercises", "hygiene_habits", "hygiene_completions",
		"mood_entries", "daily_completion", "schema_version",
	} {
		exists, err := store.tableExists(table)
		if err != nil {
			t.Fatalf("tableExists(%s) error = %v", table, err)
		}
		if !exists {
			t.Errorf("table %s missing after Init", table)
		}
	}

	exists, err := store.tableExists("DOPAMINE_ENTRIES")
	if err != nil || !exists {
		t.Errorf("tableExists should match case-insensitively, got (%v, %v)", exists, err)
	}

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("schema version = %d, latest = %d", current, latest)
	}
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults %+v", settings, models.DefaultSettings())
	}

	settings.NotificationsEnabled = false
	settings.ReportHour = 7
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.NotificationsEnabled || got.ReportHour != 7 {
		t.Errorf("re-init overwrote user settings: %+v", got)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestReopenAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifelog.db")
	store := New(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	entry := models.DopamineEntry{ID: "d1", Date: "2024-03-01", Status: models.DopaminePassed}
	if err := store.SaveDopamineEntry(entry); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetDopamineEntry("2024-03-01"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("closed store error = %v, want ErrNotLoaded", err)
	}

	reopened := New(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetDopamineEntry("2024-03-01")
	if err != nil {
		t.Fatalf("GetDopamineEntry() error = %v", err)
	}
	if got.ID != "d1" || got.Status != models.DopaminePassed {
		t.Errorf("got %+v", got)
	}
}

func TestDopamineUpsertOnDate(t *testing.T) {
	store := setupTestStore(t)

	first := models.DopamineEntry{ID: "d1", Date: "2024-03-01", Status: models.DopaminePassed, CreatedAt: ts("2024-03-01T20:00:00Z")}
	if err := store.SaveDopamineEntry(first); err != nil {
		t.Fatal(err)
	}
	second := models.DopamineEntry{ID: "d2", Date: "2024-03-01", Status: models.DopamineFailed, Notes: "relapsed", CreatedAt: ts("2024-03-01T22:00:00Z")}
	if err := store.SaveDopamineEntry(second); err != nil {
		t.Fatal(err)
	}

	all, err := store.GetAllDopamineEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row per date, got %d", len(all))
	}
	if all[0].ID != "d1" || all[0].Status != models.DopamineFailed || all[0].Notes != "relapsed" {
		t.Errorf("upserted row = %+v", all[0])
	}

	if _, err := store.GetDopamineEntry("2024-03-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing date error = %v, want ErrNotFound", err)
	}
}

func TestRecentDopamineEntries(t *testing.T) {
	store := setupTestStore(t)
	for i, date := range []string{"2024-03-01", "2024-03-03", "2024-03-02"} {
		e := models.DopamineEntry{ID: string(rune('a' + i)), Date: date, Status: models.DopaminePassed}
		if err := store.SaveDopamineEntry(e); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.GetRecentDopamineEntries(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].Date != "2024-03-03" || recent[1].Date != "2024-03-02" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestWorkoutEntryExercisesRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	w := models.WorkoutEntry{
		ID:         "w1",
		Date:       "2024-03-04",
		Type:       models.WorkoutCompleted,
		TemplateID: "tpl",
		Exercises: []models.ExerciseLog{{
			Name: "Squats",
			Sets: []models.SetLog{{SetNumber: 1, Weight: 60, Reps: 10}, {SetNumber: 2, Weight: 62.5, Reps: 8}},
		}},
		DurationMin: 45,
	}
	if err := store.SaveWorkoutEntry(w); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetWorkoutEntry("2024-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Exercises) != 1 || len(got.Exercises[0].Sets) != 2 || got.Exercises[0].Sets[1].Weight != 62.5 {
		t.Errorf("exercises = %+v", got.Exercises)
	}
	if got.DurationMin != 45 || got.TemplateID != "tpl" {
		t.Errorf("entry = %+v", got)
	}

	rest := models.WorkoutEntry{ID: "w2", Date: "2024-03-05", Type: models.WorkoutRest}
	if err := store.SaveWorkoutEntry(rest); err != nil {
		t.Fatal(err)
	}
	got, err = store.GetWorkoutEntry("2024-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if got.Exercises != nil {
		t.Errorf("rest day exercises = %+v, want nil", got.Exercises)
	}
}

func TestDeleteTemplateCascades(t *testing.T) {
	store := setupTestStore(t)

	if err := store.SaveWorkoutTemplate(models.WorkoutTemplate{ID: "tpl", Name: "Full Body Workout"}); err != nil {
		t.Fatal(err)
	}
	for i, name := range []string{"Squats", "Push-ups"} {
		ex := models.WorkoutExercise{ID: name, TemplateID: "tpl", Name: name, Order: i + 1, TargetSets: 3, TargetReps: 10}
		if err := store.SaveWorkoutExercise(ex); err != nil {
			t.Fatal(err)
		}
	}

	exercises, err := store.GetExercisesForTemplate("tpl")
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 2 || exercises[0].Name != "Squats" {
		t.Fatalf("exercises = %+v", exercises)
	}

	byName, err := store.GetWorkoutTemplateByName("Full Body Workout")
	if err != nil || byName.ID != "tpl" {
		t.Fatalf("GetWorkoutTemplateByName = (%+v, %v)", byName, err)
	}

	if err := store.DeleteWorkoutTemplate("tpl"); err != nil {
		t.Fatalf("DeleteWorkoutTemplate() error = %v", err)
	}
	all, err := store.GetAllWorkoutExercises()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("exercises survived template delete: %+v", all)
	}
	if err := store.DeleteWorkoutTemplate("tpl"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestHygieneCompletionUpsertAndCascade(t *testing.T) {
	store := setupTestStore(t)

	habits := []models.HygieneHabit{
		{ID: "h2", Name: "Face Wash", Order: 2},
		{ID: "h1", Name: "Brush Teeth", Order: 1},
	}
	for _, h := range habits {
		if err := store.SaveHygieneHabit(h); err != nil {
			t.Fatal(err)
		}
	}
	ordered, err := store.GetAllHygieneHabits()
	if err != nil {
		t.Fatal(err)
	}
	if len(ordered) != 2 || ordered[0].ID != "h1" {
		t.Errorf("habits not ordered by sort_order: %+v", ordered)
	}

	c := models.HygieneCompletion{ID: "c1", HabitID: "h1", Date: "2024-03-01", Completed: true}
	if err := store.SaveHygieneCompletion(c); err != nil {
		t.Fatal(err)
	}
	c.ID = "c-other"
	c.Completed = false
	if err := store.SaveHygieneCompletion(c); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetHygieneCompletion("h1", "2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "c1" || got.Completed {
		t.Errorf("upserted completion = %+v", got)
	}

	if err := store.SaveHygieneCompletion(models.HygieneCompletion{ID: "c2", HabitID: "h2", Date: "2024-03-01", Completed: true}); err != nil {
		t.Fatal(err)
	}
	day, err := store.GetHygieneCompletionsForDay("2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 2 {
		t.Errorf("completions for day = %d, want 2", len(day))
	}

	if err := store.DeleteHygieneHabit("h1"); err != nil {
		t.Fatal(err)
	}
	forHabit, err := store.GetHygieneCompletionsForHabit("h1")
	if err != nil {
		t.Fatal(err)
	}
	if len(forHabit) != 0 {
		t.Errorf("completions survived habit delete: %+v", forHabit)
	}
}

func TestMoodAndSnapshots(t *testing.T) {
	store := setupTestStore(t)

	m := models.MoodEntry{ID: "m1", Date: "2024-03-01", Mood: 4, Energy: 3, Stress: 2, OCD: 1, Numb: 2, Notes: "ok"}
	if err := store.SaveMoodEntry(m); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetMoodEntry("2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood != 4 || got.Stress != 2 || got.Notes != "ok" {
		t.Errorf("mood = %+v", got)
	}
	if err := store.DeleteMoodEntry("m1"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteMoodEntry("m1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("delete missing mood error = %v", err)
	}

	snap := models.DailyCompletion{Date: "2024-03-01", DopamineCompleted: true, HygieneCompleted: true, TotalCompletion: 70}
	if err := store.SaveDailyCompletion(snap); err != nil {
		t.Fatal(err)
	}
	snap.TotalCompletion = 100
	snap.WorkoutCompleted = true
	if err := store.SaveDailyCompletion(snap); err != nil {
		t.Fatal(err)
	}
	all, err := store.GetAllDailyCompletions()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].TotalCompletion != 100 || !all[0].WorkoutCompleted {
		t.Errorf("snapshots = %+v", all)
	}
}

func TestClearAllKeepsSettings(t *testing.T) {
	store := setupTestStore(t)

	if err := store.SaveDopamineEntry(models.DopamineEntry{ID: "d1", Date: "2024-03-01", Status: models.DopaminePassed}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHygieneHabit(models.HygieneHabit{ID: "h1", Name: "Brush Teeth"}); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	data, err := storage.Dump(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.DopamineEntries) != 0 || len(data.HygieneHabits) != 0 {
		t.Errorf("records survived ClearAll: %+v", data)
	}
	if data.Settings.ReportHour == 0 {
		t.Error("settings should survive ClearAll")
	}
}

func TestDumpRestoreBetweenStores(t *testing.T) {
	src := setupTestStore(t)
	if err := src.SaveHygieneHabit(models.HygieneHabit{ID: "h1", Name: "Brush Teeth", Order: 1}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveHygieneCompletion(models.HygieneCompletion{ID: "c1", HabitID: "h1", Date: "2024-03-01", Completed: true}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveWorkoutEntry(models.WorkoutEntry{ID: "w1", Date: "2024-03-01", Type: models.WorkoutMissed}); err != nil {
		t.Fatal(err)
	}

	data, err := storage.Dump(src)
	if err != nil {
		t.Fatal(err)
	}

	dst := storage.NewMemoryStore()
	if err := storage.Restore(dst, data); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	c, err := dst.GetHygieneCompletion("h1", "2024-03-01")
	if err != nil || !c.Completed {
		t.Errorf("restored completion = (%+v, %v)", c, err)
	}
	w, err := dst.GetWorkoutEntry("2024-03-01")
	if err != nil || w.Type != models.WorkoutMissed {
		t.Errorf("restored workout = (%+v, %v)", w, err)
	}
}
