package engine

import (
	"time"

	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
)

// ComputeSnapshot builds the cached summary row for date. Hygiene counts as
// completed once at least HygieneSnapshotThreshold percent of habits are done.
func ComputeSnapshot(r RecordReader, date string, now time.Time) (models.DailyCompletion, error) {
	b, err := ComputeBreakdown(r, date)
	if err != nil {
		return models.DailyCompletion{}, err
	}
	hygiene, err := ComputeHygieneCompletion(r, date)
	if err != nil {
		return models.DailyCompletion{}, err
	}
	return models.DailyCompletion{
		Date:              date,
		DopamineCompleted: b.Dopamine == models.DopaminePassed,
		WorkoutCompleted:  b.Workout == models.WorkoutCompleted,
		HygieneCompleted:  b.HabitsTotal > 0 && hygiene >= constants.HygieneSnapshotThreshold,
		TotalCompletion:   b.Total,
		UpdatedAt:         now,
	}, nil
}
