package config

import "fmt"

// Validate checks values that cleanenv cannot express as tags.
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("database.backend must be %q or %q (got %q)", BackendSQLite, BackendPostgres, c.Database.Backend)
	}

	if c.Backup.Keep < 1 {
		return fmt.Errorf("backup.keep must be >= 1 (got %d)", c.Backup.Keep)
	}
	if c.Report.DefaultHour < 0 || c.Report.DefaultHour > 23 {
		return fmt.Errorf("report.default_hour must be between 0 and 23 (got %d)", c.Report.DefaultHour)
	}
	if c.Notifier.DurationMs <= 0 {
		return fmt.Errorf("notifier.duration_ms must be > 0 (got %d)", c.Notifier.DurationMs)
	}
	return nil
}
