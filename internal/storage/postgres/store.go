// Package postgres stores records in a PostgreSQL schema named after the app.
// It shares its queries with the SQLite store through sqlstore.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/migration"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/storage/sqlstore"
	"github.com/julianstephens/lifelog/migrations"
)

type Store struct {
	*sqlstore.Store
	connStr string
}

func New(connStr string) *Store {
	return &Store{
		Store:   sqlstore.New(sq.Dollar),
		connStr: withSearchPath(connStr),
	}
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.Attach(db)
	return nil
}

func (s *Store) Init() error {
	if s.DB() == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if _, err := s.DB().Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := s.EnsureDefaultSettings(); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.DB() != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.runner().ValidateVersion()
}

func (s *Store) Close() error {
	if db := s.DB(); db != nil {
		s.Attach(nil)
		return db.Close()
	}
	return nil
}

// GetConfigPath returns a fixed label so the connection string never leaks
// into logs or backup paths.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

func (s *Store) runner() *migration.Runner {
	return migration.NewRunner(s.DB(), migrations.Postgres(), sq.Dollar)
}

func (s *Store) Migrate() (int, error) {
	if s.DB() == nil {
		return 0, storage.ErrNotLoaded
	}
	return s.runner().ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", "postgres")
	})
}

func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.DB() == nil {
		return 0, 0, storage.ErrNotLoaded
	}
	r := s.runner()
	if current, err = r.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	latest, err = r.GetLatestVersion()
	return current, latest, err
}

var _ storage.Provider = (*Store)(nil)
