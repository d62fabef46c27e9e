package sqlstore

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/lifelog/internal/models"
)

var (
	templateColumns = []string{"id", "name", "category", "created_at"}
	exerciseColumns = []string{"id", "template_id", "name", "pr", "sort_order", "target_sets", "target_reps", "created_at"}
)

func scanTemplate(row rowScanner) (models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	var createdAt string
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &createdAt); err != nil {
		return models.WorkoutTemplate{}, err
	}
	var err error
	t.CreatedAt, err = parseTime(createdAt, "created_at", t.ID)
	if err != nil {
		return models.WorkoutTemplate{}, err
	}
	return t, nil
}

func scanExercise(row rowScanner) (models.WorkoutExercise, error) {
	var e models.WorkoutExercise
	var createdAt string
	if err := row.Scan(&e.ID, &e.TemplateID, &e.Name, &e.PR, &e.Order, &e.TargetSets, &e.TargetReps, &createdAt); err != nil {
		return models.WorkoutExercise{}, err
	}
	var err error
	e.CreatedAt, err = parseTime(createdAt, "created_at", e.ID)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	return e, nil
}

func (s *Store) SaveWorkoutTemplate(t models.WorkoutTemplate) error {
	_, err := s.exec(s.sb.Insert("workout_templates").
		Columns(templateColumns...).
		Values(t.ID, t.Name, t.Category, formatTime(t.CreatedAt)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category`))
	return err
}

func (s *Store) GetWorkoutTemplate(id string) (models.WorkoutTemplate, error) {
	return s.getTemplate(sq.Eq{"id": id})
}

func (s *Store) GetWorkoutTemplateByName(name string) (models.WorkoutTemplate, error) {
	return s.getTemplate(sq.Eq{"name": name})
}

func (s *Store) getTemplate(pred sq.Eq) (models.WorkoutTemplate, error) {
	row, err := s.queryRow(s.sb.Select(templateColumns...).
		From("workout_templates").
		Where(pred).
		OrderBy("created_at").
		Limit(1))
	if err != nil {
		return models.WorkoutTemplate{}, err
	}
	t, err := scanTemplate(row)
	if err != nil {
		return models.WorkoutTemplate{}, notFound(err)
	}
	return t, nil
}

func (s *Store) GetAllWorkoutTemplates() ([]models.WorkoutTemplate, error) {
	rows, err := s.query(s.sb.Select(templateColumns...).
		From("workout_templates").
		OrderBy("created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.WorkoutTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// DeleteWorkoutTemplate removes the template and its exercises together.
func (s *Store) DeleteWorkoutTemplate(id string) error {
	return s.deleteWithChildren("workout_templates", id, "workout_exercises", "template_id")
}

func (s *Store) SaveWorkoutExercise(e models.WorkoutExercise) error {
	_, err := s.exec(s.sb.Insert("workout_exercises").
		Columns(exerciseColumns...).
		Values(e.ID, e.TemplateID, e.Name, e.PR, e.Order, e.TargetSets, e.TargetReps, formatTime(e.CreatedAt)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			template_id = excluded.template_id,
			name = excluded.name,
			pr = excluded.pr,
			sort_order = excluded.sort_order,
			target_sets = excluded.target_sets,
			target_reps = excluded.target_reps`))
	return err
}

func (s *Store) GetWorkoutExercise(id string) (models.WorkoutExercise, error) {
	row, err := s.queryRow(s.sb.Select(exerciseColumns...).
		From("workout_exercises").
		Where(sq.Eq{"id": id}))
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	e, err := scanExercise(row)
	if err != nil {
		return models.WorkoutExercise{}, notFound(err)
	}
	return e, nil
}

func (s *Store) GetExercisesForTemplate(templateID string) ([]models.WorkoutExercise, error) {
	return s.listExercises(s.sb.Select(exerciseColumns...).
		From("workout_exercises").
		Where(sq.Eq{"template_id": templateID}).
		OrderBy("sort_order", "created_at"))
}

func (s *Store) GetAllWorkoutExercises() ([]models.WorkoutExercise, error) {
	return s.listExercises(s.sb.Select(exerciseColumns...).
		From("workout_exercises").
		OrderBy("template_id", "sort_order"))
}

func (s *Store) listExercises(b sq.SelectBuilder) ([]models.WorkoutExercise, error) {
	rows, err := s.query(b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.WorkoutExercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (s *Store) DeleteWorkoutExercise(id string) error {
	return s.deleteByID("workout_exercises", id)
}
