package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

// Set LIFELOG_TEST_POSTGRES_DSN to a disposable database to run these, e.g.
// "postgres://lifelog@localhost:5432/lifelog_test?sslmode=disable".
func setupIntegrationStore(t *testing.T) *Store {
	t.Helper()
	connStr := os.Getenv("LIFELOG_TEST_POSTGRES_DSN")
	if connStr == "" {
		t.Skip("LIFELOG_TEST_POSTGRES_DSN not set, skipping PostgreSQL integration test")
	}
	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Integration(t *testing.T) {
	store := setupIntegrationStore(t)

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatal(err)
		}
		settings.ReportHour = 6
		if err := store.SaveSettings(settings); err != nil {
			t.Fatal(err)
		}
		got, err := store.GetSettings()
		if err != nil || got.ReportHour != 6 {
			t.Errorf("settings = (%+v, %v)", got, err)
		}
	})

	t.Run("DopamineUpsert", func(t *testing.T) {
		for _, status := range []models.DopamineStatus{models.DopaminePassed, models.DopamineFailed} {
			e := models.DopamineEntry{ID: "pg-d1", Date: "2024-03-01", Status: status}
			if err := store.SaveDopamineEntry(e); err != nil {
				t.Fatal(err)
			}
		}
		got, err := store.GetDopamineEntry("2024-03-01")
		if err != nil || got.Status != models.DopamineFailed {
			t.Errorf("entry = (%+v, %v)", got, err)
		}
	})

	t.Run("HygieneCascade", func(t *testing.T) {
		if err := store.SaveHygieneHabit(models.HygieneHabit{ID: "pg-h1", Name: "Brush Teeth"}); err != nil {
			t.Fatal(err)
		}
		c := models.HygieneCompletion{ID: "pg-c1", HabitID: "pg-h1", Date: "2024-03-01", Completed: true}
		if err := store.SaveHygieneCompletion(c); err != nil {
			t.Fatal(err)
		}
		if err := store.DeleteHygieneHabit("pg-h1"); err != nil {
			t.Fatal(err)
		}
		if _, err := store.GetHygieneCompletion("pg-h1", "2024-03-01"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("completion after cascade = %v, want ErrNotFound", err)
		}
	})
}
