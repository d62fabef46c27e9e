package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// MoodEntry holds the day's self-reported ratings. It is informational and never scored.
type MoodEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Mood      int       `json:"mood"`
	Energy    int       `json:"energy"`
	Stress    int       `json:"stress"`
	OCD       int       `json:"ocd"`
	Numb      int       `json:"numb"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
