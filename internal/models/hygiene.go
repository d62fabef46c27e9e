package models

import "time"

// HygieneHabit is a user-defined recurring hygiene task
type HygieneHabit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	Category    string    `json:"category,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HygieneCompletion records a single day's state of a habit
type HygieneCompletion struct {
	ID           string    `json:"id"`
	HabitID      string    `json:"habit_id"`
	Date         string    `json:"date"` // YYYY-MM-DD format
	Completed    bool      `json:"completed"`
	TimeSpentMin int       `json:"time_spent_min,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
