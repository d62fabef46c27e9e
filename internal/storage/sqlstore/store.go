// Package sqlstore implements the record store over database/sql. Queries are
// built with squirrel so the same code serves SQLite (? placeholders) and
// PostgreSQL ($n placeholders).
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/storage"
)

type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// New creates a store using the given placeholder dialect. The database handle
// is attached later with Attach, once the owning driver has opened it.
func New(format sq.PlaceholderFormat) *Store {
	return &Store{
		sb: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

func (s *Store) Attach(db *sql.DB) {
	s.db = db
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return storage.ErrNotLoaded
	}
	return nil
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

func (s *Store) exec(b sqlizer) (sql.Result, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.Exec(query, args...)
}

func (s *Store) query(b sqlizer) (*sql.Rows, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.Query(query, args...)
}

func (s *Store) queryRow(b sqlizer) (*sql.Row, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.QueryRow(query, args...), nil
}

// deleteByID removes one row and reports storage.ErrNotFound when nothing matched.
func (s *Store) deleteByID(table, id string) error {
	result, err := s.exec(s.sb.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	return nil
}

// deleteWithChildren removes a parent row and every child row referencing it
// through fk in one transaction.
func (s *Store) deleteWithChildren(table, id, childTable, fk string) error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query, args, err := s.sb.Delete(childTable).Where(sq.Eq{fk: id}).ToSql()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete %s for %s: %w", childTable, id, err)
	}

	query, args, err = s.sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to build query: %w", err)
	}
	result, err := tx.Exec(query, args...)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}

	return tx.Commit()
}

// notFound maps sql.ErrNoRows onto the store's sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(constants.TimestampFormat)
}

func parseTime(value, column, id string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s for %s: %w", column, id, err)
	}
	return t, nil
}

// ClearAll removes every record table's rows in a single transaction.
func (s *Store) ClearAll() error {
	if err := s.ready(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tables := []string{
		"hygiene_completions",
		"hygiene_habits",
		"workout_exercises",
		"workout_templates",
		"workout_history",
		"dopamine_entries",
		"mood_entries",
		"daily_completion",
	}
	for _, table := range tables {
		query, args, err := s.sb.Delete(table).ToSql()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
