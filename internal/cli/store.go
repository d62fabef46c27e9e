package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifelog/internal/config"
	"github.com/julianstephens/lifelog/internal/keyring"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/storage/postgres"
	"github.com/julianstephens/lifelog/internal/storage/sqlite"
)

// OpenStore picks the backend named by cfg without connecting to it. A
// PostgreSQL DSN written in configuration must not carry a password; one
// without a DSN is resolved from the environment or the OS keyring, where
// credentials are allowed.
func OpenStore(cfg *config.Config, getenv func(string) string) (storage.Provider, error) {
	dsn := cfg.Database.DSN
	if !cfg.IsPostgres() {
		if !postgres.IsConnString(cfg.Database.Path) {
			logger.Debug("Using SQLite store", "path", cfg.Database.Path)
			return sqlite.New(cfg.Database.Path), nil
		}
		dsn = cfg.Database.Path
	}

	if dsn != "" {
		if postgres.HasEmbeddedCredentials(dsn) {
			return nil, fmt.Errorf("%w: store the password with 'lifelog config set-connection', "+
				"export LIFELOG_DB_CONNECTION, or use a .pgpass file", postgres.ErrEmbeddedCredentials)
		}
		logger.Debug("Using PostgreSQL store", "dsn", postgres.MaskPassword(dsn))
		return postgres.New(dsn), nil
	}

	dsn, err := keyring.ResolveConnectionString(getenv)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, errors.New("no PostgreSQL connection configured: set database.dsn, " +
			"export LIFELOG_DB_CONNECTION, or run 'lifelog config set-connection'")
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Using PostgreSQL store from keyring or environment", "dsn", postgres.MaskPassword(dsn))
	return postgres.New(dsn), nil
}
