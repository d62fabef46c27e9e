package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/scheduler"
	"github.com/julianstephens/lifelog/internal/storage"
)

type fakeNotifier struct {
	err   error
	title string
	text  string
	calls int
}

func (f *fakeNotifier) Notify(title, text string) error {
	f.calls++
	f.title, f.text = title, text
	return f.err
}

type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) write(text string) error {
	f.text = text
	return f.err
}

func seedDay(t *testing.T, s *storage.JSONStore, date string) {
	t.Helper()
	for i, name := range []string{"Brush Teeth", "Face Wash", "Hair Care", "Bath / Shower", "Perfume / Cologne"} {
		h := models.HygieneHabit{ID: name, Name: name, Order: i + 1}
		if err := s.SaveHygieneHabit(h); err != nil {
			t.Fatalf("SaveHygieneHabit failed: %v", err)
		}
		if i < 4 {
			if err := s.SaveHygieneCompletion(models.HygieneCompletion{ID: "c" + name, HabitID: h.ID, Date: date, Completed: true}); err != nil {
				t.Fatalf("SaveHygieneCompletion failed: %v", err)
			}
		}
	}
	if err := s.SaveDopamineEntry(models.DopamineEntry{ID: "d", Date: date, Status: models.DopaminePassed}); err != nil {
		t.Fatalf("SaveDopamineEntry failed: %v", err)
	}
	if err := s.SaveWorkoutEntry(models.WorkoutEntry{ID: "w", Date: date, Type: models.WorkoutCompleted}); err != nil {
		t.Fatalf("SaveWorkoutEntry failed: %v", err)
	}
}

func TestBuildDailyReport(t *testing.T) {
	s := storage.NewMemoryStore()
	seedDay(t, s, "2024-03-06")
	if err := s.SaveMoodEntry(models.MoodEntry{ID: "m", Date: "2024-03-06", Mood: 4, Energy: 3, Stress: 2, OCD: 1, Numb: 1}); err != nil {
		t.Fatalf("SaveMoodEntry failed: %v", err)
	}

	rep, err := BuildDailyReport(s, "2024-03-06")
	if err != nil {
		t.Fatalf("BuildDailyReport failed: %v", err)
	}

	if rep.OverallCompletion != 94 {
		t.Errorf("OverallCompletion = %d, want 94", rep.OverallCompletion)
	}
	if rep.Class != "good" {
		t.Errorf("Class = %s, want good", rep.Class)
	}
	if rep.Dopamine != "✅ Successful" || rep.Workout != "💪 Completed" {
		t.Errorf("Unexpected labels: %q %q", rep.Dopamine, rep.Workout)
	}
	if rep.HygieneCompletion != 80 || rep.HabitsTotal != 5 {
		t.Errorf("Hygiene = %d%% of %d, want 80%% of 5", rep.HygieneCompletion, rep.HabitsTotal)
	}
	if rep.Mood == nil || rep.Mood.Mood != 4 {
		t.Fatalf("Expected mood entry, got %+v", rep.Mood)
	}

	table := rep.FormatTable()
	for _, line := range []string{
		"Metric|Value\n",
		"Date|2024-03-06\n",
		"Overall Completion|94%\n",
		"Dopamine Control|✅ Successful\n",
		"Hygiene Completion|80%\n",
		"Stress|2/5\n",
	} {
		if !strings.Contains(table, line) {
			t.Errorf("Table missing %q:\n%s", line, table)
		}
	}
}

func TestBuildDailyReport_EmptyDay(t *testing.T) {
	rep, err := BuildDailyReport(storage.NewMemoryStore(), "2024-03-06")
	if err != nil {
		t.Fatalf("BuildDailyReport failed: %v", err)
	}
	if rep.Class != "bad" || rep.OverallCompletion != 0 {
		t.Errorf("Unexpected empty report: %+v", rep)
	}
	if rep.Dopamine != "Not logged" || rep.Workout != "Not logged" {
		t.Errorf("Expected unlogged labels, got %q %q", rep.Dopamine, rep.Workout)
	}
	if rep.Mood != nil {
		t.Error("Expected no mood section")
	}
	if strings.Contains(rep.FormatTable(), "Mood|") {
		t.Error("Table should omit mood rows when no mood is logged")
	}
}

func TestLabels(t *testing.T) {
	dopamine := map[models.DopamineStatus]string{
		"":                    "Not logged",
		models.DopaminePassed: "✅ Successful",
		models.DopamineFailed: "❌ Challenging",
	}
	for status, want := range dopamine {
		if got := DopamineLabel(status); got != want {
			t.Errorf("DopamineLabel(%q) = %q, want %q", status, got, want)
		}
	}

	workout := map[models.WorkoutType]string{
		"":                      "Not logged",
		models.WorkoutCompleted: "💪 Completed",
		models.WorkoutRest:      "😴 Rest Day",
		models.WorkoutMissed:    "❌ Missed",
	}
	for typ, want := range workout {
		if got := WorkoutLabel(typ); got != want {
			t.Errorf("WorkoutLabel(%q) = %q, want %q", typ, got, want)
		}
	}
}

func TestDeliver(t *testing.T) {
	rep := DailyReport{Date: "2024-03-06", OverallCompletion: 50}

	t.Run("notifier", func(t *testing.T) {
		n := &fakeNotifier{}
		clip := &fakeClipboard{}
		method, err := Deliver(rep, n, clip.write)
		if err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
		if method != MethodNotifier || clip.text != "" {
			t.Errorf("Expected notifier delivery only, got %s", method)
		}
		if n.title != "Daily report 2024-03-06: 50%" {
			t.Errorf("Unexpected title %q", n.title)
		}
	})

	t.Run("falls back to clipboard", func(t *testing.T) {
		n := &fakeNotifier{err: errors.New("tray not running")}
		clip := &fakeClipboard{}
		method, err := Deliver(rep, n, clip.write)
		if err != nil {
			t.Fatalf("Deliver failed: %v", err)
		}
		if method != MethodClipboard || clip.text != rep.FormatTable() {
			t.Errorf("Expected clipboard fallback, got %s", method)
		}
	})

	t.Run("both fail", func(t *testing.T) {
		sendErr := errors.New("tray not running")
		clipErr := errors.New("no clipboard")
		_, err := Deliver(rep, &fakeNotifier{err: sendErr}, (&fakeClipboard{err: clipErr}).write)
		if !errors.Is(err, sendErr) || !errors.Is(err, clipErr) {
			t.Errorf("Expected both errors, got %v", err)
		}
	})
}

func TestRunAuto(t *testing.T) {
	s := storage.NewMemoryStore()
	seedDay(t, s, "2024-03-06")
	sched, err := scheduler.New(20, time.UTC)
	if err != nil {
		t.Fatalf("scheduler.New failed: %v", err)
	}
	settings := models.DefaultSettings()
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	n := &fakeNotifier{}
	clip := &fakeClipboard{}

	sent, err := RunAuto(s, sched, n, clip.write, time.Date(2024, 3, 6, 19, 0, 0, 0, time.UTC))
	if err != nil || sent {
		t.Fatalf("Expected nothing before the report hour, got sent=%v err=%v", sent, err)
	}

	evening := time.Date(2024, 3, 6, 20, 30, 0, 0, time.UTC)
	sent, err = RunAuto(s, sched, n, clip.write, evening)
	if err != nil || !sent {
		t.Fatalf("Expected report to be sent, got sent=%v err=%v", sent, err)
	}
	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.LastReportDate != "2024-03-06" {
		t.Errorf("LastReportDate = %q, want 2024-03-06", got.LastReportDate)
	}

	sent, err = RunAuto(s, sched, n, clip.write, evening.Add(time.Hour))
	if err != nil || sent {
		t.Fatalf("Expected a single report per day, got sent=%v err=%v", sent, err)
	}
	if n.calls != 1 {
		t.Errorf("Notifier called %d times, want 1", n.calls)
	}
}

func TestRunAuto_NotificationsDisabled(t *testing.T) {
	s := storage.NewMemoryStore()
	settings := models.DefaultSettings()
	settings.NotificationsEnabled = false
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	sched, err := scheduler.New(0, time.UTC)
	if err != nil {
		t.Fatalf("scheduler.New failed: %v", err)
	}

	n := &fakeNotifier{}
	clip := &fakeClipboard{}
	sent, err := RunAuto(s, sched, n, clip.write, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC))
	if err != nil || !sent {
		t.Fatalf("Expected clipboard delivery, got sent=%v err=%v", sent, err)
	}
	if n.calls != 0 {
		t.Error("Notifier should not be used when notifications are disabled")
	}
	if clip.text == "" {
		t.Error("Expected report on clipboard")
	}
}
