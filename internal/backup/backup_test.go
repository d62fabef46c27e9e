package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lifelog.db")

	store := sqlite.New(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	if err := store.SaveDopamineEntry(models.DopamineEntry{ID: "d1", Date: "2024-03-06", Status: models.DopaminePassed}); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	return dbPath
}

// clock returns a now func that advances one minute per call.
func clock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func dopamineCount(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.New(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer store.Close()

	entries, err := store.GetAllDopamineEntries()
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	return len(entries)
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, "", 0)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written to unexpected dir: %s", path)
	}
	if n := dopamineCount(t, path); n != 1 {
		t.Errorf("expected 1 entry in backup, got %d", n)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), "", 0)
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestCreate_SameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, t.TempDir(), 5)
	fixed := time.Date(2024, 3, 6, 20, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct backup names")
	}
	if filepath.Base(second) != "lifelog-20240306-200000-1.db" {
		t.Errorf("unexpected name %s", filepath.Base(second))
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"notes.txt",
		"lifelog-latest.db",
		"lifelog-20240306-200000-x.db",
		"other-20240306-200000.db",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "lifelog-20240306-200000.db"), 0700); err != nil {
		t.Fatal(err)
	}

	backups, err := NewManager("unused.db", dir, 0).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %v", backups)
	}
}

func TestList_MissingDir(t *testing.T) {
	backups, err := NewManager("unused.db", filepath.Join(t.TempDir(), "none"), 0).List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected empty list, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, t.TempDir(), 3)
	mgr.now = clock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	var paths []string
	for i := 0; i < 5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		paths = append(paths, path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Path != paths[4] || backups[2].Path != paths[2] {
		t.Errorf("expected the newest backups to survive, got %v", backups)
	}
	for _, old := range paths[:2] {
		if _, err := os.Stat(old); !os.IsNotExist(err) {
			t.Errorf("expected %s to be rotated out", old)
		}
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, t.TempDir(), 0)
	mgr.now = clock(time.Date(2024, 3, 6, 20, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.New(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.SaveDopamineEntry(models.DopamineEntry{ID: "d2", Date: "2024-03-07", Status: models.DopamineFailed}); err != nil {
		t.Fatalf("SaveDopamineEntry failed: %v", err)
	}
	store.Close()
	if n := dopamineCount(t, dbPath); n != 2 {
		t.Fatalf("expected 2 entries before restore, got %d", n)
	}

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if n := dopamineCount(t, dbPath); n != 1 {
		t.Errorf("expected 1 entry after restore, got %d", n)
	}
	if previous == "" {
		t.Fatal("expected the replaced database to be backed up")
	}
	if n := dopamineCount(t, previous); n != 2 {
		t.Errorf("expected 2 entries in pre-restore backup, got %d", n)
	}
}

func TestRestore_InvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, t.TempDir(), 0)

	bogus := filepath.Join(t.TempDir(), "lifelog-20240306-200000.db")
	if err := os.WriteFile(bogus, []byte("definitely not sqlite, padded out past the header size ................................................"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Fatal("expected error restoring an invalid backup")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected error restoring a missing backup")
	}
	if n := dopamineCount(t, dbPath); n != 1 {
		t.Errorf("database should be untouched, got %d entries", n)
	}
}
