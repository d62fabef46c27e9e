package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var dopamineColumns = []string{"id", "date", "status", "notes", "created_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDopamine(row rowScanner) (models.DopamineEntry, error) {
	var e models.DopamineEntry
	var status, createdAt string
	if err := row.Scan(&e.ID, &e.Date, &status, &e.Notes, &createdAt); err != nil {
		return models.DopamineEntry{}, err
	}
	e.Status = models.DopamineStatus(status)

	var err error
	e.CreatedAt, err = parseTime(createdAt, "created_at", e.ID)
	if err != nil {
		return models.DopamineEntry{}, err
	}
	return e, nil
}

func (s *Store) SaveDopamineEntry(entry models.DopamineEntry) error {
	_, err := s.exec(s.sb.Insert("dopamine_entries").
		Columns(dopamineColumns...).
		Values(entry.ID, entry.Date, string(entry.Status), entry.Notes, formatTime(entry.CreatedAt)).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			status = excluded.status,
			notes = excluded.notes,
			created_at = excluded.created_at`))
	return err
}

func (s *Store) GetDopamineEntry(date string) (models.DopamineEntry, error) {
	row, err := s.queryRow(s.sb.Select(dopamineColumns...).
		From("dopamine_entries").
		Where(sq.Eq{"date": date}).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.DopamineEntry{}, err
	}
	e, err := scanDopamine(row)
	if err != nil {
		return models.DopamineEntry{}, notFound(err)
	}
	return e, nil
}

func (s *Store) GetAllDopamineEntries() ([]models.DopamineEntry, error) {
	return s.listDopamine(s.sb.Select(dopamineColumns...).
		From("dopamine_entries").
		OrderBy("date", "created_at"))
}

func (s *Store) GetRecentDopamineEntries(limit int) ([]models.DopamineEntry, error) {
	return s.listDopamine(s.sb.Select(dopamineColumns...).
		From("dopamine_entries").
		OrderBy("date DESC").
		Limit(uint64(limit)))
}

func (s *Store) listDopamine(b sq.SelectBuilder) ([]models.DopamineEntry, error) {
	rows, err := s.query(b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DopamineEntry
	for rows.Next() {
		e, err := scanDopamine(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteDopamineEntry(id string) error {
	return s.deleteByID("dopamine_entries", id)
}
