package models

import "time"

type DopamineStatus string

const (
	DopaminePassed DopamineStatus = "passed"
	DopamineFailed DopamineStatus = "failed"
)

// DopamineEntry records whether a day of dopamine control held.
type DopamineEntry struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"` // YYYY-MM-DD format
	Status    DopamineStatus `json:"status"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (s DopamineStatus) Valid() bool {
	return s == DopaminePassed || s == DopamineFailed
}
