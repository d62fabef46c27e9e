package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
)

// Scheduler decides when the automatic daily report is due. A report is due
// once per calendar day, at or after the configured hour, in the user's
// timezone.
type Scheduler struct {
	hour int
	loc  *time.Location
}

func New(hour int, loc *time.Location) (*Scheduler, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid report hour %d: must be between 0 and 23", hour)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{hour: hour, loc: loc}, nil
}

// FromSettings builds a scheduler from the user's stored settings.
func FromSettings(settings models.Settings, loc *time.Location) (*Scheduler, error) {
	return New(settings.ReportHour, loc)
}

// Today returns the calendar date of now in the scheduler's timezone.
func (s *Scheduler) Today(now time.Time) string {
	return now.In(s.loc).Format(constants.DateFormat)
}

// Due reports whether the report for now's day should be sent, given the
// date of the last report.
func (s *Scheduler) Due(now time.Time, lastReportDate string) bool {
	local := now.In(s.loc)
	if local.Format(constants.DateFormat) == lastReportDate {
		return false
	}
	return local.Hour() >= s.hour
}

// Next returns the next moment a report becomes due.
func (s *Scheduler) Next(now time.Time, lastReportDate string) time.Time {
	local := now.In(s.loc)
	if s.Due(now, lastReportDate) {
		return local
	}
	at := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.loc)
	if !local.Before(at) || local.Format(constants.DateFormat) == lastReportDate {
		at = time.Date(local.Year(), local.Month(), local.Day()+1, s.hour, 0, 0, 0, s.loc)
	}
	return at
}
