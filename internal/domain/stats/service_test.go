package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/perennial/grove/internal/domain/stats"
	"github.com/perennial/grove/internal/repository"
	"github.com/perennial/grove/internal/repository/mocks"
)

func newService(streaks *mocks.StreakRepository, tampers *mocks.TamperRepository, trees *mocks.TreeRepository) *stats.Service {
	return stats.NewService(streaks, tampers, trees, nil)
}

func TestCurrentStreak_CreatesSingletonOnFirstAccess(t *testing.T) {
	streaks := &mocks.StreakRepository{}
	svc := newService(streaks, &mocks.TamperRepository{}, &mocks.TreeRepository{})

	streaks.On("Get", mock.Anything).Return(nil, repository.ErrNotFound).Once()
	streaks.On("Save", mock.Anything,
		mock.MatchedBy(func(d *stats.StreakData) bool {
			return d.CurrentStreak == 0 && d.LastSessionStartDay.IsZero()
		}),
	).Return(nil).Once()

	count, err := svc.CurrentStreak(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
	streaks.AssertExpectations(t)
}

func TestCurrentStreak_ReturnsExisting(t *testing.T) {
	streaks := &mocks.StreakRepository{}
	svc := newService(streaks, &mocks.TamperRepository{}, &mocks.TreeRepository{})

	streaks.On("Get", mock.Anything).
		Return(&stats.StreakData{ID: "streak", CurrentStreak: 7, LastSessionStartDay: day("2026-08-27")}, nil)

	count, err := svc.CurrentStreak(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
	streaks.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordCompletion_AdvancesAndSaves(t *testing.T) {
	streaks := &mocks.StreakRepository{}
	svc := newService(streaks, &mocks.TamperRepository{}, &mocks.TreeRepository{})

	streaks.On("Get", mock.Anything).
		Return(&stats.StreakData{ID: "streak", CurrentStreak: 3, LastSessionStartDay: day("2026-08-27")}, nil)
	streaks.On("Save", mock.Anything,
		mock.MatchedBy(func(d *stats.StreakData) bool {
			return d.CurrentStreak == 4 && d.LastSessionStartDay.Equal(day("2026-08-28"))
		}),
	).Return(nil).Once()

	require.NoError(t, svc.RecordCompletion(context.Background(), day("2026-08-28")))
	streaks.AssertExpectations(t)
}

func TestRecordCompletion_SaveFailure(t *testing.T) {
	streaks := &mocks.StreakRepository{}
	svc := newService(streaks, &mocks.TamperRepository{}, &mocks.TreeRepository{})

	streaks.On("Get", mock.Anything).
		Return(&stats.StreakData{ID: "streak"}, nil)
	streaks.On("Save", mock.Anything, mock.Anything).Return(errors.New("locked"))

	require.Error(t, svc.RecordCompletion(context.Background(), day("2026-08-28")))
}

func TestLogTimeJump_AppendsEvent(t *testing.T) {
	tampers := &mocks.TamperRepository{}
	svc := newService(&mocks.StreakRepository{}, tampers, &mocks.TreeRepository{})

	tampers.On("Append", mock.Anything,
		mock.MatchedBy(func(e *stats.TamperEvent) bool {
			return e.TimeJumpMagnitude == 450.5 && e.ID != ""
		}),
	).Return(nil).Once()

	require.NoError(t, svc.LogTimeJump(context.Background(), 450.5))
	tampers.AssertExpectations(t)
}

func TestTamperEvents_List(t *testing.T) {
	tampers := &mocks.TamperRepository{}
	svc := newService(&mocks.StreakRepository{}, tampers, &mocks.TreeRepository{})

	tampers.On("List", mock.Anything, 10).
		Return([]stats.TamperEvent{{ID: "e1", TimeJumpMagnitude: 600}}, nil)

	events, err := svc.TamperEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestTotals(t *testing.T) {
	trees := &mocks.TreeRepository{}
	svc := newService(&mocks.StreakRepository{}, &mocks.TamperRepository{}, trees)

	trees.On("Count", mock.Anything).Return(5, nil)
	trees.On("CountByStartDay", mock.Anything, mock.Anything).Return(2, nil)

	total, err := svc.TotalTreesPlanted(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, total)

	focus, err := svc.TotalFocusTime(context.Background())
	require.NoError(t, err)
	require.Equal(t, stats.FocusTime{Hours: 2, Minutes: 5}, focus)

	today, err := svc.TodaysTreeCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, today)
}

func TestFocusTimeString(t *testing.T) {
	require.Equal(t, "25m", stats.NewFocusTime(25).String())
	require.Equal(t, "2h 0m", stats.NewFocusTime(120).String())
	require.Equal(t, "1h 15m", stats.NewFocusTime(75).String())
	require.Equal(t, "0m", stats.NewFocusTime(0).String())
}
