package engine

import (
	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/utils"
)

type WorkoutStats struct {
	WeeklyCompleted  int
	MonthlyCompleted int
	TotalCompleted   int
	// Consistency is the share of the month's elapsed days with a completed
	// workout, as a rounded percentage capped at 100.
	Consistency   int
	CurrentStreak int
}

// ComputeWorkoutStats counts completed workouts in the Sunday-start week and
// the calendar month containing asOf, and over all history. The current
// streak walks back from asOf for at most MaxWorkoutStreakLookbackDays days
// and, unlike the dopamine streak, stops at asOf itself when nothing is logged.
func ComputeWorkoutStats(r RecordReader, asOf string) (WorkoutStats, error) {
	day, err := parseDate(asOf)
	if err != nil {
		return WorkoutStats{}, err
	}
	entries, err := r.GetAllWorkoutEntries()
	if err != nil {
		return WorkoutStats{}, lookupErr("workout history lookup", "", err)
	}

	weekStart := utils.FormatDate(utils.WeekStart(day))
	weekEnd := utils.FormatDate(utils.AddDays(utils.WeekStart(day), 6))
	monthPrefix := day.Format(constants.MonthFormat)

	var stats WorkoutStats
	completed := make(map[string]bool)
	for _, w := range firstPerDate(entries, func(w models.WorkoutEntry) string { return w.Date }) {
		if w.Type != models.WorkoutCompleted {
			continue
		}
		completed[w.Date] = true
		stats.TotalCompleted++
		if w.Date >= weekStart && w.Date <= weekEnd {
			stats.WeeklyCompleted++
		}
		if len(w.Date) >= len(monthPrefix) && w.Date[:len(monthPrefix)] == monthPrefix {
			stats.MonthlyCompleted++
		}
	}

	daysElapsed := day.Day()
	stats.Consistency = min(constants.MaxScore, roundHalfUp(float64(stats.MonthlyCompleted)/float64(daysElapsed)*100))

	for i := 0; i < constants.MaxWorkoutStreakLookbackDays; i++ {
		if !completed[utils.FormatDate(utils.AddDays(day, -i))] {
			break
		}
		stats.CurrentStreak++
	}
	return stats, nil
}
