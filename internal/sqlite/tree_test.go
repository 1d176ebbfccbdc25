package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/repository"
)

func plantTree(t *testing.T, db *DB, startTime time.Time) *forest.Tree {
	t.Helper()
	ctx := context.Background()

	sess := session.New(startTime, 0)
	sess.Status = session.StatusCompleted
	require.NoError(t, NewSessionRepository(db).Create(ctx, sess))

	tree := forest.NewTree(sess.ID, sess.StartTime, sess.StartTime.Add(25*time.Minute), sess.StartDay)
	require.NoError(t, NewTreeRepository(db).Create(ctx, tree))
	return tree
}

func TestTreeRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTreeRepository(db)

	older := plantTree(t, db, time.Now().Add(-2*time.Hour))
	newer := plantTree(t, db, time.Now().Add(-time.Hour))

	trees, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, trees, 2)
	require.Equal(t, newer.ID, trees[0].ID)
	require.Equal(t, older.ID, trees[1].ID)
	require.Equal(t, forest.FullyGrownStage, trees[0].VisualStage)
}

func TestTreeRepository_ListByStartDay(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTreeRepository(db)

	today := plantTree(t, db, time.Now())
	plantTree(t, db, time.Now().AddDate(0, 0, -1))

	trees, err := repo.ListByStartDay(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, trees, 1)
	require.Equal(t, today.ID, trees[0].ID)
}

func TestTreeRepository_Counts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTreeRepository(db)

	plantTree(t, db, time.Now())
	plantTree(t, db, time.Now())
	plantTree(t, db, time.Now().AddDate(0, 0, -3))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, total)

	today, err := repo.CountByStartDay(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, 2, today)
}

func TestTreeRepository_RequiresSession(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTreeRepository(db)

	orphan := forest.NewTree("no-such-session", time.Now(), time.Now(), time.Now())
	err := repo.Create(context.Background(), orphan)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
