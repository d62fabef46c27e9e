package engine

import (
	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/utils"
)

// ComputeCurrentStreak counts passed dopamine days walking back from asOf.
// A failed day ends the walk. A missing entry ends it too, except on asOf
// itself, which may simply not be logged yet. The walk covers at most
// MaxStreakLookbackDays days.
func ComputeCurrentStreak(r RecordReader, asOf string) (int, error) {
	day, err := parseDate(asOf)
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := 0; i < constants.MaxStreakLookbackDays; i++ {
		date := utils.FormatDate(day)
		e, ok, err := dopamineOn(r, date)
		if err != nil {
			return 0, err
		}
		switch {
		case ok && e.Status == models.DopaminePassed:
			streak++
		case ok:
			return streak, nil
		case i > 0:
			return streak, nil
		}
		day = utils.AddDays(day, -1)
	}
	return streak, nil
}

// ComputeLongestStreak returns the longest run of passed entries in date
// order. Runs are broken only by a failed entry; days with no entry in
// between do not reset the count.
func ComputeLongestStreak(r RecordReader) (int, error) {
	entries, err := r.GetAllDopamineEntries()
	if err != nil {
		return 0, lookupErr("dopamine history lookup", "", err)
	}

	longest, run := 0, 0
	for _, e := range firstPerDate(entries, func(e models.DopamineEntry) string { return e.Date }) {
		if e.Status == models.DopaminePassed {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest, nil
}
