package constants

const (
	// Daily completion weights. The three domains share a fixed 100 point budget.
	DopamineWeight = 40.0 // awarded when the dopamine entry is passed
	WorkoutWeight  = 30.0 // awarded when the workout entry is completed
	HygieneWeight  = 30.0 // scaled by the fraction of habits completed
	MaxScore       = DopamineWeight + WorkoutWeight + HygieneWeight

	// RestDayPoints is what a logged rest day contributes to the workout component.
	RestDayPoints = 0.0

	// Backward walk bounds
	MaxStreakLookbackDays        = 365
	MaxWorkoutStreakLookbackDays = 30

	// Dashboard calendar thresholds (percent)
	DashboardPassedThreshold  = 75
	DashboardWarningThreshold = 50

	// Hygiene calendar thresholds (percent)
	HygienePassedThreshold  = 80
	HygieneWarningThreshold = 50

	// HygieneSnapshotThreshold marks hygiene as completed in the daily snapshot
	HygieneSnapshotThreshold = 50

	// ReportGoodThreshold classifies the overall completion in the daily report
	ReportGoodThreshold = 80

	// MaxConcurrentDayScores bounds the goroutines scoring calendar cells
	MaxConcurrentDayScores = 8
)

func init() {
	if MaxScore != 100.0 {
		panic("DopamineWeight, WorkoutWeight and HygieneWeight must sum to 100")
	}
	if RestDayPoints < 0 || RestDayPoints > WorkoutWeight {
		panic("RestDayPoints must be within the workout weight")
	}
}
