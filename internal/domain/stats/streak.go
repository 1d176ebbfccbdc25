package stats

import (
	"time"

	"github.com/perennial/grove/internal/dates"
)

// AdvanceStreak applies the consecutive-day rule to a streak record and
// returns the updated value. Pure; the caller persists the result.
//
// completionDay is the completed session's start day, not the wall-clock day
// of completion, so sessions finishing just after midnight count for the day
// they began. A completion day before the recorded one is a clock rollback
// and is rejected outright.
func AdvanceStreak(data StreakData, completionDay time.Time) StreakData {
	day := dates.StartOfDay(completionDay)

	if !data.LastSessionStartDay.IsZero() {
		last := dates.StartOfDay(data.LastSessionStartDay)

		if day.Before(last) {
			return data
		}
		if day.Equal(last) {
			return data
		}
		if dates.ConsecutiveDay(last, day) {
			data.CurrentStreak++
			data.LastSessionStartDay = day
			return data
		}
	}

	// First-ever session, or a gap of two or more days.
	data.CurrentStreak = 1
	data.LastSessionStartDay = day
	return data
}
