package views

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
}

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	entry := models.DopamineEntry{ID: "d1", Date: "2024-03-06", Status: models.DopaminePassed, CreatedAt: fixedNow()}
	if err := store.SaveDopamineEntry(entry); err != nil {
		t.Fatal(err)
	}
	return &cli.Context{Store: store, Now: fixedNow}
}

func TestTodayCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Errorf("today failed: %v", err)
	}
	if err := (&TodayCmd{Date: "06-03-2024"}).Run(ctx); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestScoreCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ScoreCmd{}).Run(ctx); err != nil {
		t.Errorf("score failed: %v", err)
	}
	if err := (&ScoreCmd{Date: "2024-02-30"}).Run(ctx); err == nil {
		t.Error("expected error for impossible date")
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name    string
		cmd     CalendarCmd
		wantErr bool
	}{
		{name: "current month", cmd: CalendarCmd{Domain: "all"}},
		{name: "explicit month", cmd: CalendarCmd{Month: "2024-02", Domain: "hygiene"}},
		{name: "dopamine", cmd: CalendarCmd{Month: "2024-03", Domain: "dopamine"}},
		{name: "workout", cmd: CalendarCmd{Month: "2024-03", Domain: "workout"}},
		{name: "bad month", cmd: CalendarCmd{Month: "March", Domain: "all"}, wantErr: true},
		{name: "bad domain", cmd: CalendarCmd{Domain: "sleep"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
