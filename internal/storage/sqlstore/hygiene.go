package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var (
	habitColumns      = []string{"id", "name", "description", "sort_order", "category", "difficulty", "created_at"}
	completionColumns = []string{"id", "habit_id", "date", "completed", "time_spent_min", "created_at"}
)

func scanHabit(row rowScanner) (models.HygieneHabit, error) {
	var h models.HygieneHabit
	var createdAt string
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Order, &h.Category, &h.Difficulty, &createdAt); err != nil {
		return models.HygieneHabit{}, err
	}
	var err error
	h.CreatedAt, err = parseTime(createdAt, "created_at", h.ID)
	if err != nil {
		return models.HygieneHabit{}, err
	}
	return h, nil
}

func scanCompletion(row rowScanner) (models.HygieneCompletion, error) {
	var c models.HygieneCompletion
	var createdAt string
	if err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Completed, &c.TimeSpentMin, &createdAt); err != nil {
		return models.HygieneCompletion{}, err
	}
	var err error
	c.CreatedAt, err = parseTime(createdAt, "created_at", c.ID)
	if err != nil {
		return models.HygieneCompletion{}, err
	}
	return c, nil
}

func (s *Store) SaveHygieneHabit(h models.HygieneHabit) error {
	_, err := s.exec(s.sb.Insert("hygiene_habits").
		Columns(habitColumns...).
		Values(h.ID, h.Name, h.Description, h.Order, h.Category, h.Difficulty, formatTime(h.CreatedAt)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			sort_order = excluded.sort_order,
			category = excluded.category,
			difficulty = excluded.difficulty`))
	return err
}

func (s *Store) GetHygieneHabit(id string) (models.HygieneHabit, error) {
	return s.getHabit(sq.Eq{"id": id})
}

func (s *Store) GetHygieneHabitByName(name string) (models.HygieneHabit, error) {
	return s.getHabit(sq.Eq{"name": name})
}

func (s *Store) getHabit(pred sq.Eq) (models.HygieneHabit, error) {
	row, err := s.queryRow(s.sb.Select(habitColumns...).
		From("hygiene_habits").
		Where(pred).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.HygieneHabit{}, err
	}
	h, err := scanHabit(row)
	if err != nil {
		return models.HygieneHabit{}, notFound(err)
	}
	return h, nil
}

func (s *Store) GetAllHygieneHabits() ([]models.HygieneHabit, error) {
	rows, err := s.query(s.sb.Select(habitColumns...).
		From("hygiene_habits").
		OrderBy("sort_order", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.HygieneHabit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHygieneHabit removes the habit together with its completions.
func (s *Store) DeleteHygieneHabit(id string) error {
	return s.deleteWithChildren("hygiene_habits", id, "hygiene_completions", "habit_id")
}

func (s *Store) SaveHygieneCompletion(c models.HygieneCompletion) error {
	_, err := s.exec(s.sb.Insert("hygiene_completions").
		Columns(completionColumns...).
		Values(c.ID, c.HabitID, c.Date, c.Completed, c.TimeSpentMin, formatTime(c.CreatedAt)).
		Suffix(`ON CONFLICT(habit_id, date) DO UPDATE SET
			completed = excluded.completed,
			time_spent_min = excluded.time_spent_min,
			created_at = excluded.created_at`))
	return err
}

func (s *Store) GetHygieneCompletion(habitID, date string) (models.HygieneCompletion, error) {
	row, err := s.queryRow(s.sb.Select(completionColumns...).
		From("hygiene_completions").
		Where(sq.Eq{"habit_id": habitID, "date": date}).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.HygieneCompletion{}, err
	}
	c, err := scanCompletion(row)
	if err != nil {
		return models.HygieneCompletion{}, notFound(err)
	}
	return c, nil
}

func (s *Store) GetHygieneCompletionsForDay(date string) ([]models.HygieneCompletion, error) {
	return s.listCompletions(s.sb.Select(completionColumns...).
		From("hygiene_completions").
		Where(sq.Eq{"date": date}).
		OrderBy("created_at"))
}

func (s *Store) GetHygieneCompletionsForHabit(habitID string) ([]models.HygieneCompletion, error) {
	return s.listCompletions(s.sb.Select(completionColumns...).
		From("hygiene_completions").
		Where(sq.Eq{"habit_id": habitID}).
		OrderBy("date"))
}

func (s *Store) GetAllHygieneCompletions() ([]models.HygieneCompletion, error) {
	return s.listCompletions(s.sb.Select(completionColumns...).
		From("hygiene_completions").
		OrderBy("date", "created_at"))
}

func (s *Store) listCompletions(b sq.SelectBuilder) ([]models.HygieneCompletion, error) {
	rows, err := s.query(b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.HygieneCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) DeleteHygieneCompletion(id string) error {
	return s.deleteByID("hygiene_completions", id)
}
