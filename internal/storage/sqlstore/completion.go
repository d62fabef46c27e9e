package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var snapshotColumns = []string{"date", "dopamine_completed", "workout_completed", "hygiene_completed", "total_completion", "updated_at"}

func scanSnapshot(row rowScanner) (models.DailyCompletion, error) {
	var d models.DailyCompletion
	var updatedAt string
	if err := row.Scan(&d.Date, &d.DopamineCompleted, &d.WorkoutCompleted, &d.HygieneCompleted, &d.TotalCompletion, &updatedAt); err != nil {
		return models.DailyCompletion{}, err
	}
	var err error
	d.UpdatedAt, err = parseTime(updatedAt, "updated_at", d.Date)
	if err != nil {
		return models.DailyCompletion{}, err
	}
	return d, nil
}

func (s *Store) SaveDailyCompletion(d models.DailyCompletion) error {
	_, err := s.exec(s.sb.Insert("daily_completion").
		Columns(snapshotColumns...).
		Values(d.Date, d.DopamineCompleted, d.WorkoutCompleted, d.HygieneCompleted, d.TotalCompletion, formatTime(d.UpdatedAt)).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			dopamine_completed = excluded.dopamine_completed,
			workout_completed = excluded.workout_completed,
			hygiene_completed = excluded.hygiene_completed,
			total_completion = excluded.total_completion,
			updated_at = excluded.updated_at`))
	return err
}

func (s *Store) GetDailyCompletion(date string) (models.DailyCompletion, error) {
	row, err := s.queryRow(s.sb.Select(snapshotColumns...).
		From("daily_completion").
		Where(sq.Eq{"date": date}))
	if err != nil {
		return models.DailyCompletion{}, err
	}
	d, err := scanSnapshot(row)
	if err != nil {
		return models.DailyCompletion{}, notFound(err)
	}
	return d, nil
}

func (s *Store) GetAllDailyCompletions() ([]models.DailyCompletion, error) {
	rows, err := s.query(s.sb.Select(snapshotColumns...).
		From("daily_completion").
		OrderBy("date"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.DailyCompletion
	for rows.Next() {
		d, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, d)
	}
	return snapshots, rows.Err()
}
