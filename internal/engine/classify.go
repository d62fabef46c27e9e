package engine

import (
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/utils"
)

// DayStatus is the colour class of a calendar cell.
type DayStatus string

const (
	StatusNone    DayStatus = "none"
	StatusFailed  DayStatus = "failed"
	StatusWarning DayStatus = "warning"
	StatusPassed  DayStatus = "passed"
	// StatusUnknown marks a day whose lookup failed.
	StatusUnknown DayStatus = "unknown"
)

// Classifier maps one day to its calendar class.
type Classifier func(r RecordReader, date string) (DayStatus, error)

func classifyScore(score, passed, warning int) DayStatus {
	switch {
	case score >= passed:
		return StatusPassed
	case score >= warning:
		return StatusWarning
	case score > 0:
		return StatusFailed
	}
	return StatusNone
}

// ClassifyScore buckets an overall completion percentage.
func ClassifyScore(score int) DayStatus {
	return classifyScore(score, constants.DashboardPassedThreshold, constants.DashboardWarningThreshold)
}

// ClassifyHygieneScore buckets a hygiene percentage, which has a higher bar.
func ClassifyHygieneScore(percent int) DayStatus {
	return classifyScore(percent, constants.HygienePassedThreshold, constants.HygieneWarningThreshold)
}

func ClassifyDayForCalendar(r RecordReader, date string) (DayStatus, error) {
	score, err := ComputeDailyCompletion(r, date)
	if err != nil {
		return StatusNone, err
	}
	return ClassifyScore(score), nil
}

func ClassifyHygieneDay(r RecordReader, date string) (DayStatus, error) {
	percent, err := ComputeHygieneCompletion(r, date)
	if err != nil {
		return StatusNone, err
	}
	return ClassifyHygieneScore(percent), nil
}

func ClassifyDopamineDay(r RecordReader, date string) (DayStatus, error) {
	if _, err := parseDate(date); err != nil {
		return StatusNone, err
	}
	e, ok, err := dopamineOn(r, date)
	if err != nil || !ok {
		return StatusNone, err
	}
	if e.Status == models.DopaminePassed {
		return StatusPassed, nil
	}
	return StatusFailed, nil
}

func ClassifyWorkoutDay(r RecordReader, date string) (DayStatus, error) {
	if _, err := parseDate(date); err != nil {
		return StatusNone, err
	}
	w, ok, err := workoutOn(r, date)
	if err != nil || !ok {
		return StatusNone, err
	}
	switch w.Type {
	case models.WorkoutCompleted:
		return StatusPassed, nil
	case models.WorkoutRest:
		return StatusWarning, nil
	case models.WorkoutMissed:
		return StatusFailed, nil
	}
	return StatusNone, nil
}

type DayCell struct {
	Date   string
	Day    int
	Status DayStatus
	// Err is set when the day could not be classified; Status is then StatusUnknown.
	Err error
}

// ClassifyMonth classifies every day of the month, scoring up to
// MaxConcurrentDayScores days at once. Cells come back in day order. A day
// whose lookup fails is returned as StatusUnknown with its error, and the
// other days are still classified; the returned error joins the per-day
// failures.
func ClassifyMonth(r RecordReader, year int, month time.Month, classify Classifier) ([]DayCell, error) {
	if classify == nil {
		classify = ClassifyDayForCalendar
	}
	days := utils.DaysInMonth(year, month)
	cells := make([]DayCell, days)

	var g errgroup.Group
	g.SetLimit(constants.MaxConcurrentDayScores)
	for i := range cells {
		date := utils.FormatDate(time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC))
		g.Go(func() error {
			status, err := classify(r, date)
			if err != nil {
				status = StatusUnknown
			}
			cells[i] = DayCell{Date: date, Day: i + 1, Status: status, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, c := range cells {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return cells, errors.Join(errs...)
}
