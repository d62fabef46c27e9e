package models

import "time"

type WorkoutType string

const (
	WorkoutCompleted WorkoutType = "completed"
	WorkoutRest      WorkoutType = "rest"
	WorkoutMissed    WorkoutType = "missed"
)

func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutCompleted, WorkoutRest, WorkoutMissed:
		return true
	}
	return false
}

// WorkoutEntry is one day of workout history
type WorkoutEntry struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"` // YYYY-MM-DD format
	Type        WorkoutType   `json:"type"`
	TemplateID  string        `json:"template_id,omitempty"`
	Exercises   []ExerciseLog `json:"exercises,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	DurationMin int           `json:"duration_min,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ExerciseLog captures the sets performed for one exercise of a completed workout
type ExerciseLog struct {
	Name string   `json:"name"`
	Sets []SetLog `json:"sets"`
}

type SetLog struct {
	SetNumber int     `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// WorkoutTemplate is a named routine made of exercises
type WorkoutTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type WorkoutExercise struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	PR         float64   `json:"pr,omitempty"` // heaviest logged weight
	Order      int       `json:"order"`
	TargetSets int       `json:"target_sets"`
	TargetReps int       `json:"target_reps"`
	CreatedAt  time.Time `json:"created_at"`
}
