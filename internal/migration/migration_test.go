package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count == 1
}

func TestCurrentVersionRoundTrip(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(nil), sq.Question)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFilesSorted(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"003_moods.sql": "CREATE TABLE moods (id INTEGER);",
		"001_init.sql":  "CREATE TABLE habits (id INTEGER);",
		"002_notes.sql": "ALTER TABLE habits ADD COLUMN notes TEXT;",
		"README.md":     "not a migration",
	}), sq.Question)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	wantNames := []string{"init", "notes", "moods"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, m.Version, m.Name, i+1, wantNames[i])
		}
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(openTestDB(t), migrationFS(tt.files), sq.Question)
			_, err := runner.ReadMigrationFiles()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	fsys := migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id INTEGER PRIMARY KEY, name TEXT);",
	})
	runner := NewRunner(db, fsys, sq.Question)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}
	if !tableExists(t, db, "habits") {
		t.Error("habits table was not created")
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (no-op) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations on second run, got %d", count)
	}

	fsys["002_moods.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE moods (id INTEGER PRIMARY KEY);")}
	var logged []string
	count, err = runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations (incremental) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 incremental migration, got %d", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": `
			CREATE TABLE habits (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), sq.Question)

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if tableExists(t, db, "habits") {
		t.Error("table should not exist after failed migration")
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE habits (id INTEGER PRIMARY KEY);",
	}), sq.Question)

	if err := runner.SetVersion(10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion should fail for a newer database")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should fail for a newer database")
	}
}

func TestGetLatestVersion(t *testing.T) {
	runner := NewRunner(openTestDB(t), migrationFS(map[string]string{
		"001_init.sql":  "SELECT 1;",
		"007_later.sql": "SELECT 1;",
		"002_next.sql":  "SELECT 1;",
	}), sq.Question)

	latest, err := runner.GetLatestVersion()
	if err != nil {
		t.Fatalf("GetLatestVersion failed: %v", err)
	}
	if latest != 7 {
		t.Errorf("expected latest version 7, got %d", latest)
	}
}
