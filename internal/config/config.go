// Package config loads process configuration from an optional YAML file and
// LIFELOG_* environment variables. User preferences that change at runtime
// live in the settings table instead.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Backup   BackupConfig   `yaml:"backup"`
	Report   ReportConfig   `yaml:"report"`
	Notifier NotifierConfig `yaml:"notifier"`
}

// DatabaseConfig selects the record store. DSN may be left empty for postgres,
// in which case the connection string comes from LIFELOG_DB_CONNECTION or the
// OS keyring.
type DatabaseConfig struct {
	Backend string `yaml:"backend" env:"LIFELOG_DB_BACKEND" env-default:"sqlite"`
	Path    string `yaml:"path"    env:"LIFELOG_DB_PATH"    env-default:"~/.config/lifelog/lifelog.db"`
	DSN     string `yaml:"dsn"     env:"LIFELOG_DB_DSN"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug" env:"LIFELOG_DEBUG" env-default:"false"`
	Dir   string `yaml:"dir"   env:"LIFELOG_LOG_DIR"`
}

type BackupConfig struct {
	Keep int    `yaml:"keep" env:"LIFELOG_BACKUP_KEEP" env-default:"14"`
	Dir  string `yaml:"dir"  env:"LIFELOG_BACKUP_DIR"`
}

type ReportConfig struct {
	// DefaultHour seeds report_hour when the settings table has none.
	DefaultHour int `yaml:"default_hour" env:"LIFELOG_REPORT_HOUR" env-default:"20"`
}

type NotifierConfig struct {
	DurationMs int `yaml:"duration_ms" env:"LIFELOG_NOTIFY_DURATION_MS" env-default:"8000"`
}

// ConfigDir is the directory holding the SQLite file; logs and backups
// default to subdirectories of it.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.Database.Path)
}

func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(c.ConfigDir(), "logs")
}

func (c *Config) BackupDir() string {
	if c.Backup.Dir != "" {
		return c.Backup.Dir
	}
	return filepath.Join(c.ConfigDir(), "backups")
}

func (c *Config) IsPostgres() bool {
	return c.Database.Backend == BackendPostgres
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
