// Package dates provides calendar-day arithmetic in the session owner's
// local time zone. All comparisons work on whole calendar days, never on
// fixed 86400-second deltas, so daylight-saving transitions do not shift
// day boundaries.
package dates

import "time"

// StartOfDay returns t truncated to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)

	days := 0
	switch {
	case from.Before(to):
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			days++
		}
	case to.Before(from):
		for d := to; d.Before(from); d = d.AddDate(0, 0, 1) {
			days--
		}
	}
	return days
}

// ConsecutiveDay reports whether day is exactly one calendar day after prev.
func ConsecutiveDay(prev, day time.Time) bool {
	return DaysBetween(prev, day) == 1
}
