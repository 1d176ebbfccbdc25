package stats

import (
	"context"
	"time"
)

// StreakRepository persists the streak singleton.
type StreakRepository interface {
	Get(ctx context.Context) (*StreakData, error)
	Save(ctx context.Context, data *StreakData) error
}

// TamperRepository persists the append-only tamper-event log.
type TamperRepository interface {
	Append(ctx context.Context, event *TamperEvent) error
	List(ctx context.Context, limit int) ([]TamperEvent, error)
}

// TreeCounter provides the tree counts the aggregate stats derive from.
type TreeCounter interface {
	Count(ctx context.Context) (int, error)
	CountByStartDay(ctx context.Context, day time.Time) (int, error)
}
