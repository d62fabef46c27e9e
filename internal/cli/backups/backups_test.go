package backups

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
}

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.New(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &cli.Context{Store: store, Now: fixedNow}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dbPath), "backups", "*.db"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 backup file, got %d", len(matches))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	entry := models.DopamineEntry{ID: "d1", Date: "2024-03-06", Status: models.DopaminePassed, CreatedAt: fixedNow()}
	if err := ctx.Store.SaveDopamineEntry(entry); err != nil {
		t.Fatal(err)
	}
	mgr := ctx.BackupManager()
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.DeleteDopamineEntry("d1"); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	reopened := sqlite.New(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reopen restored database: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetDopamineEntry("2024-03-06"); err != nil {
		t.Errorf("expected restored entry: %v", err)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: storage.NewMemoryStore(), Now: fixedNow}
	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("expected errNotSQLite, got %v", err)
	}
}
