package repository

import (
	"context"
	"time"

	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/domain/stats"
)

// SessionRepository manages session record persistence
type SessionRepository interface {
	Create(ctx context.Context, sess *session.Session) error
	Update(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, id string) (*session.Session, error)
	FindByStatus(ctx context.Context, statuses ...session.Status) (*session.Session, error)
	ListByStatus(ctx context.Context, statuses ...session.Status) ([]session.Session, error)
	ListByStartDay(ctx context.Context, day time.Time) ([]session.Session, error)
	CountByStatus(ctx context.Context, status session.Status) (int, error)
	Complete(ctx context.Context, sess *session.Session, tree *forest.Tree) error
}

// TreeRepository manages completed tree persistence
type TreeRepository interface {
	Create(ctx context.Context, tree *forest.Tree) error
	List(ctx context.Context) ([]forest.Tree, error)
	ListByStartDay(ctx context.Context, day time.Time) ([]forest.Tree, error)
	Count(ctx context.Context) (int, error)
	CountByStartDay(ctx context.Context, day time.Time) (int, error)
}

// StreakRepository manages the streak singleton
type StreakRepository interface {
	Get(ctx context.Context) (*stats.StreakData, error)
	Save(ctx context.Context, data *stats.StreakData) error
}

// TamperRepository manages the append-only tamper-event log
type TamperRepository interface {
	Append(ctx context.Context, event *stats.TamperEvent) error
	List(ctx context.Context, limit int) ([]stats.TamperEvent, error)
}
