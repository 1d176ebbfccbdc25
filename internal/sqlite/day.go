package sqlite

import (
	"fmt"
	"time"
)

// Calendar days are stored as plain YYYY-MM-DD strings so day-equality
// predicates stay exact regardless of time zone offsets in timestamps.
const dayFormat = "2006-01-02"

func formatDay(day time.Time) string {
	return day.Format(dayFormat)
}

func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(dayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored day %q: %w", s, err)
	}
	return day, nil
}
