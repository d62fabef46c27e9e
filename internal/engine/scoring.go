package engine

import (
	"math"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
)

// Breakdown is one day's score split by domain. Points are unrounded; Total
// is the rounded, clamped percentage. Dopamine and Workout are empty when the
// day has no entry.
type Breakdown struct {
	Date           string
	Dopamine       models.DopamineStatus
	Workout        models.WorkoutType
	DopaminePoints float64
	WorkoutPoints  float64
	HygienePoints  float64
	HabitsDone     int
	HabitsTotal    int
	Total          int
}

// roundHalfUp rounds to the nearest integer with .5 going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampPercent(v int) int {
	return max(0, min(constants.MaxScore, v))
}

func workoutPoints(t models.WorkoutType) float64 {
	switch t {
	case models.WorkoutCompleted:
		return constants.WorkoutWeight
	case models.WorkoutRest:
		return constants.RestDayPoints
	}
	return 0
}

// ComputeBreakdown scores date out of 100: 40 for a passed dopamine day, 30
// for a completed workout and up to 30 for hygiene in proportion to habits
// done. With no habits defined hygiene contributes nothing.
func ComputeBreakdown(r RecordReader, date string) (Breakdown, error) {
	if _, err := parseDate(date); err != nil {
		return Breakdown{}, err
	}
	b := Breakdown{Date: date}

	dop, ok, err := dopamineOn(r, date)
	if err != nil {
		return Breakdown{}, err
	}
	if ok {
		b.Dopamine = dop.Status
		if dop.Status == models.DopaminePassed {
			b.DopaminePoints = constants.DopamineWeight
		}
	}

	w, ok, err := workoutOn(r, date)
	if err != nil {
		return Breakdown{}, err
	}
	if ok {
		b.Workout = w.Type
		b.WorkoutPoints = workoutPoints(w.Type)
	}

	b.HabitsDone, b.HabitsTotal, err = hygieneOn(r, date)
	if err != nil {
		return Breakdown{}, err
	}
	if b.HabitsTotal > 0 {
		b.HygienePoints = float64(b.HabitsDone) / float64(b.HabitsTotal) * constants.HygieneWeight
	}

	b.Total = clampPercent(roundHalfUp(b.DopaminePoints + b.WorkoutPoints + b.HygienePoints))
	return b, nil
}

// ComputeDailyCompletion returns date's completion percentage in [0, 100].
func ComputeDailyCompletion(r RecordReader, date string) (int, error) {
	b, err := ComputeBreakdown(r, date)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// ComputeHygieneCompletion returns the rounded percentage of habits done on
// date, or 0 when no habits exist.
func ComputeHygieneCompletion(r RecordReader, date string) (int, error) {
	if _, err := parseDate(date); err != nil {
		return 0, err
	}
	done, total, err := hygieneOn(r, date)
	if err != nil || total == 0 {
		return 0, err
	}
	return roundHalfUp(float64(done) / float64(total) * 100), nil
}
