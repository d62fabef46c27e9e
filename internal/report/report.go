// Package report builds the end-of-day summary and delivers it to the tray
// notifier or the clipboard.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

const notLogged = "Not logged"

// Reader is what a report needs from the store.
type Reader interface {
	engine.RecordReader
	GetMoodEntry(date string) (models.MoodEntry, error)
}

type DailyReport struct {
	Date              string
	OverallCompletion int
	// Class is "good" at or above ReportGoodThreshold and "bad" otherwise.
	Class             string
	Dopamine          string
	Workout           string
	HygieneCompletion int
	HabitsTotal       int
	Mood              *models.MoodEntry
}

func DopamineLabel(status models.DopamineStatus) string {
	switch status {
	case "":
		return notLogged
	case models.DopaminePassed:
		return "✅ Successful"
	}
	return "❌ Challenging"
}

func WorkoutLabel(t models.WorkoutType) string {
	switch t {
	case "":
		return notLogged
	case models.WorkoutCompleted:
		return "💪 Completed"
	case models.WorkoutRest:
		return "😴 Rest Day"
	case models.WorkoutMissed:
		return "❌ Missed"
	}
	return string(t)
}

func BuildDailyReport(r Reader, date string) (DailyReport, error) {
	b, err := engine.ComputeBreakdown(r, date)
	if err != nil {
		return DailyReport{}, err
	}
	hygiene, err := engine.ComputeHygieneCompletion(r, date)
	if err != nil {
		return DailyReport{}, err
	}

	rep := DailyReport{
		Date:              date,
		OverallCompletion: b.Total,
		Class:             "bad",
		Dopamine:          DopamineLabel(b.Dopamine),
		Workout:           WorkoutLabel(b.Workout),
		HygieneCompletion: hygiene,
		HabitsTotal:       b.HabitsTotal,
	}
	if b.Total >= constants.ReportGoodThreshold {
		rep.Class = "good"
	}

	mood, err := r.GetMoodEntry(date)
	switch {
	case err == nil:
		rep.Mood = &mood
	case !errors.Is(err, storage.ErrNotFound):
		return DailyReport{}, &engine.LookupError{Op: "mood lookup", Date: date, Err: err}
	}
	return rep, nil
}

// Title is the notification heading for the report.
func (d DailyReport) Title() string {
	return fmt.Sprintf("Daily report %s: %d%%", d.Date, d.OverallCompletion)
}

// FormatTable renders the report as pipe separated rows that paste cleanly
// into a spreadsheet.
func (d DailyReport) FormatTable() string {
	var b strings.Builder
	row := func(metric, value string) {
		fmt.Fprintf(&b, "%s|%s\n", metric, value)
	}

	row("Metric", "Value")
	row("-----", "-----")
	row("Date", d.Date)
	row("Overall Completion", fmt.Sprintf("%d%%", d.OverallCompletion))
	row("Dopamine Control", d.Dopamine)
	row("Workout", d.Workout)
	row("Hygiene Completion", fmt.Sprintf("%d%%", d.HygieneCompletion))
	row("Hygiene Habits", fmt.Sprintf("%d", d.HabitsTotal))
	if d.Mood != nil {
		row("Mood", rating(d.Mood.Mood))
		row("Energy", rating(d.Mood.Energy))
		row("Stress", rating(d.Mood.Stress))
		row("OCD", rating(d.Mood.OCD))
		row("Numb", rating(d.Mood.Numb))
	}
	return b.String()
}

func rating(v int) string {
	return fmt.Sprintf("%d/%d", v, models.MaxRating)
}
