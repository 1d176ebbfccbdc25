package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perennial/grove/internal/dates"
)

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ts := time.Date(2025, 3, 9, 23, 45, 12, 500, loc)
	day := dates.StartOfDay(ts)

	require.Equal(t, 2025, day.Year())
	require.Equal(t, time.March, day.Month())
	require.Equal(t, 9, day.Day())
	require.Equal(t, 0, day.Hour())
	require.Equal(t, 0, day.Minute())
	require.Equal(t, 0, day.Second())
	require.Equal(t, loc, day.Location())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	require.True(t, dates.SameDay(morning, night))
	require.False(t, dates.SameDay(night, nextDay))
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	require.Equal(t, 0, dates.DaysBetween(base, base.Add(2*time.Hour)))
	require.Equal(t, 1, dates.DaysBetween(base, base.AddDate(0, 0, 1)))
	require.Equal(t, 3, dates.DaysBetween(base, base.AddDate(0, 0, 3)))
	require.Equal(t, -1, dates.DaysBetween(base, base.AddDate(0, 0, -1)))
}

func TestDaysBetween_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// The night of March 9 2025 is only 23 hours long in New York.
	before := time.Date(2025, 3, 8, 22, 0, 0, 0, loc)
	after := time.Date(2025, 3, 9, 22, 0, 0, 0, loc)

	require.Equal(t, 1, dates.DaysBetween(before, after))
	require.True(t, dates.ConsecutiveDay(before, after))
}

func TestConsecutiveDay(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	require.True(t, dates.ConsecutiveDay(base, base.AddDate(0, 0, 1)))
	require.False(t, dates.ConsecutiveDay(base, base))
	require.False(t, dates.ConsecutiveDay(base, base.AddDate(0, 0, 2)))
	require.False(t, dates.ConsecutiveDay(base.AddDate(0, 0, 1), base))
}
