package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perennial/grove/internal/domain/stats"
	"github.com/perennial/grove/internal/repository"
)

func TestStreakRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewStreakRepository(db)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStreakRepository_SaveGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewStreakRepository(db)

	data := stats.NewStreakData()
	require.NoError(t, repo.Save(ctx, data))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, data.ID, loaded.ID)
	require.Equal(t, 0, loaded.CurrentStreak)
	require.True(t, loaded.LastSessionStartDay.IsZero(), "never-sentinel should survive a round trip")
}

func TestStreakRepository_Upsert(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewStreakRepository(db)

	data := stats.NewStreakData()
	require.NoError(t, repo.Save(ctx, data))

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	data.CurrentStreak = 4
	data.LastSessionStartDay = day
	require.NoError(t, repo.Save(ctx, data))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, loaded.CurrentStreak)
	require.True(t, loaded.LastSessionStartDay.Equal(day))

	// Still a single row.
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM streak`).Scan(&count))
	require.Equal(t, 1, count)
}
