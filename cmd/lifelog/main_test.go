package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built binary through a full day of logging.
// Build it first and point LIFELOG_BIN at it.
func TestEndToEndWorkflow(t *testing.T) {
	bin := os.Getenv("LIFELOG_BIN")
	if bin == "" {
		t.Skip("LIFELOG_BIN not set")
	}
	bin, err := filepath.Abs(bin)
	if err != nil {
		t.Fatalf("Failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(bin); err != nil {
		t.Fatalf("Binary not found at %s: %v", bin, err)
	}

	tempDir := t.TempDir()
	env := append(os.Environ(),
		"HOME="+tempDir,
		"XDG_CONFIG_HOME="+filepath.Join(tempDir, ".config"),
		"LIFELOG_CONFIG=",
		"LIFELOG_DB_BACKEND=sqlite",
		"LIFELOG_DB_PATH="+filepath.Join(tempDir, "lifelog.db"),
		"LIFELOG_LOG_DIR="+filepath.Join(tempDir, "logs"),
		"LIFELOG_BACKUP_DIR="+filepath.Join(tempDir, "backups"),
	)

	runCmd(t, bin, env, "init")
	runCmd(t, bin, env, "settings", "set", "--timezone", "UTC")
	runCmd(t, bin, env, "dopamine", "log", "passed")
	runCmd(t, bin, env, "hygiene", "toggle", "Brush Teeth")

	score := runCmd(t, bin, env, "score")
	if !strings.Contains(score, "  40 pts") {
		t.Errorf("Expected dopamine points in score output, got:\n%s", score)
	}
	if !strings.Contains(score, "1/5 habits") {
		t.Errorf("Expected hygiene progress in score output, got:\n%s", score)
	}

	exported := runCmd(t, bin, env, "data", "export")
	var dump map[string]json.RawMessage
	if err := json.Unmarshal([]byte(exported), &dump); err != nil {
		t.Fatalf("Export is not valid JSON: %v\n%s", err, exported)
	}
	if !strings.Contains(exported, "Brush Teeth") {
		t.Errorf("Expected default habits in export")
	}

	runCmd(t, bin, env, "backup", "create")
	backups := runCmd(t, bin, env, "backup", "list")
	if !strings.Contains(backups, ".db") {
		t.Errorf("Expected a backup in listing, got:\n%s", backups)
	}

	runCmd(t, bin, env, "doctor")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s%s", path, args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}
