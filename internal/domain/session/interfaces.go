package session

import (
	"context"
	"time"

	"github.com/perennial/grove/internal/domain/forest"
)

// Repository provides persistence for session records.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Update(ctx context.Context, sess *Session) error
	FindByStatus(ctx context.Context, statuses ...Status) (*Session, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Session, error)
	// Complete durably applies the completion transition and creates the
	// session's tree in a single atomic step. Re-running for an already
	// completed session must not create a second tree.
	Complete(ctx context.Context, sess *Session, tree *forest.Tree) error
}

// StreakRecorder consumes completed sessions into the streak singleton.
type StreakRecorder interface {
	RecordCompletion(ctx context.Context, startDay time.Time) error
}

// TamperLogger appends detected time-jump anomalies to the audit log.
type TamperLogger interface {
	LogTimeJump(ctx context.Context, magnitude float64) error
}

// Notifier schedules the advisory completion alert. It has no effect on
// engine correctness.
type Notifier interface {
	ScheduleCompletion(seconds int)
	CancelPending()
	Reschedule(seconds int)
}
