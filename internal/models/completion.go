package models

import "time"

// DailyCompletion is a cached summary of a day, refreshed whenever that day is logged.
type DailyCompletion struct {
	Date              string    `json:"date"`
	DopamineCompleted bool      `json:"dopamine_completed"`
	WorkoutCompleted  bool      `json:"workout_completed"`
	HygieneCompleted  bool      `json:"hygiene_completed"`
	TotalCompletion   int       `json:"total_completion"`
	UpdatedAt         time.Time `json:"updated_at"`
}
