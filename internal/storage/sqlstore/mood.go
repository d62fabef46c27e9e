package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var moodColumns = []string{"id", "date", "mood", "energy", "stress", "ocd", "numb", "notes", "created_at"}

func scanMood(row rowScanner) (models.MoodEntry, error) {
	var m models.MoodEntry
	var createdAt string
	if err := row.Scan(&m.ID, &m.Date, &m.Mood, &m.Energy, &m.Stress, &m.OCD, &m.Numb, &m.Notes, &createdAt); err != nil {
		return models.MoodEntry{}, err
	}
	var err error
	m.CreatedAt, err = parseTime(createdAt, "created_at", m.ID)
	if err != nil {
		return models.MoodEntry{}, err
	}
	return m, nil
}

func (s *Store) SaveMoodEntry(m models.MoodEntry) error {
	_, err := s.exec(s.sb.Insert("mood_entries").
		Columns(moodColumns...).
		Values(m.ID, m.Date, m.Mood, m.Energy, m.Stress, m.OCD, m.Numb, m.Notes, formatTime(m.CreatedAt)).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			mood = excluded.mood,
			energy = excluded.energy,
			stress = excluded.stress,
			ocd = excluded.ocd,
			numb = excluded.numb,
			notes = excluded.notes,
			created_at = excluded.created_at`))
	return err
}

func (s *Store) GetMoodEntry(date string) (models.MoodEntry, error) {
	row, err := s.queryRow(s.sb.Select(moodColumns...).
		From("mood_entries").
		Where(sq.Eq{"date": date}).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.MoodEntry{}, err
	}
	m, err := scanMood(row)
	if err != nil {
		return models.MoodEntry{}, notFound(err)
	}
	return m, nil
}

func (s *Store) GetRecentMoodEntries(limit int) ([]models.MoodEntry, error) {
	return s.listMood(s.sb.Select(moodColumns...).
		From("mood_entries").
		OrderBy("date DESC").
		Limit(uint64(limit)))
}

func (s *Store) GetAllMoodEntries() ([]models.MoodEntry, error) {
	return s.listMood(s.sb.Select(moodColumns...).
		From("mood_entries").
		OrderBy("date"))
}

func (s *Store) listMood(b sq.SelectBuilder) ([]models.MoodEntry, error) {
	rows, err := s.query(b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteMoodEntry(id string) error {
	return s.deleteByID("mood_entries", id)
}
