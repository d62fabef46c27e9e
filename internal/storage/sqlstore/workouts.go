package sqlstore

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var workoutColumns = []string{"id", "date", "type", "template_id", "exercises", "notes", "duration_min", "created_at"}

func scanWorkout(row rowScanner) (models.WorkoutEntry, error) {
	var e models.WorkoutEntry
	var workoutType, exercises, createdAt string
	if err := row.Scan(&e.ID, &e.Date, &workoutType, &e.TemplateID, &exercises, &e.Notes, &e.DurationMin, &createdAt); err != nil {
		return models.WorkoutEntry{}, err
	}
	e.Type = models.WorkoutType(workoutType)

	if exercises != "" {
		if err := json.Unmarshal([]byte(exercises), &e.Exercises); err != nil {
			return models.WorkoutEntry{}, fmt.Errorf("failed to parse exercises for workout %s: %w", e.ID, err)
		}
	}

	var err error
	e.CreatedAt, err = parseTime(createdAt, "created_at", e.ID)
	if err != nil {
		return models.WorkoutEntry{}, err
	}
	return e, nil
}

func (s *Store) SaveWorkoutEntry(entry models.WorkoutEntry) error {
	exercises := ""
	if len(entry.Exercises) > 0 {
		data, err := json.Marshal(entry.Exercises)
		if err != nil {
			return fmt.Errorf("failed to serialize exercises: %w", err)
		}
		exercises = string(data)
	}

	_, err := s.exec(s.sb.Insert("workout_history").
		Columns(workoutColumns...).
		Values(entry.ID, entry.Date, string(entry.Type), entry.TemplateID, exercises,
			entry.Notes, entry.DurationMin, formatTime(entry.CreatedAt)).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			type = excluded.type,
			template_id = excluded.template_id,
			exercises = excluded.exercises,
			notes = excluded.notes,
			duration_min = excluded.duration_min,
			created_at = excluded.created_at`))
	return err
}

func (s *Store) GetWorkoutEntry(date string) (models.WorkoutEntry, error) {
	row, err := s.queryRow(s.sb.Select(workoutColumns...).
		From("workout_history").
		Where(sq.Eq{"date": date}).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.WorkoutEntry{}, err
	}
	e, err := scanWorkout(row)
	if err != nil {
		return models.WorkoutEntry{}, notFound(err)
	}
	return e, nil
}

func (s *Store) GetAllWorkoutEntries() ([]models.WorkoutEntry, error) {
	rows, err := s.query(s.sb.Select(workoutColumns...).
		From("workout_history").
		OrderBy("date", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WorkoutEntry
	for rows.Next() {
		e, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteWorkoutEntry(id string) error {
	return s.deleteByID("workout_history", id)
}
