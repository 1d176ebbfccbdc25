package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Phase is a host-lifecycle signal delivered to the coordinator.
type Phase string

const (
	PhaseForeground  Phase = "foreground"
	PhaseBackground  Phase = "background"
	PhaseInterrupted Phase = "interrupted"
)

// RecoveryCoordinator reconciles persisted session records with reality:
// on cold launch it abandons anything a previous process left non-terminal,
// and at runtime it translates host-lifecycle transitions into engine
// operations.
type RecoveryCoordinator struct {
	sessions Repository
	engine   *Engine
	logger   *slog.Logger
}

// NewRecoveryCoordinator creates a coordinator over the shared engine.
func NewRecoveryCoordinator(sessions Repository, engine *Engine, logger *slog.Logger) *RecoveryCoordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RecoveryCoordinator{sessions: sessions, engine: engine, logger: logger}
}

// AbandonStale marks every record left active or paused by a previous
// process as abandoned, in one batch. Run before the engine accepts
// commands. Idempotent: the query only selects non-terminal statuses, so a
// second run finds nothing.
func (r *RecoveryCoordinator) AbandonStale(ctx context.Context) (int, error) {
	stale, err := r.sessions.ListByStatus(ctx, StatusActive, StatusPaused)
	if err != nil {
		return 0, fmt.Errorf("listing stale sessions: %w", err)
	}

	now := time.Now()
	for i := range stale {
		sess := &stale[i]
		sess.Status = StatusAbandoned
		sess.EndTime = &now
		if err := r.sessions.Update(ctx, sess); err != nil {
			return 0, fmt.Errorf("abandoning session %s: %w", sess.ID, err)
		}
	}

	if len(stale) > 0 {
		r.logger.Info("abandoned stale sessions", "count", len(stale))
	}
	return len(stale), nil
}

// HandlePhase dispatches a host-lifecycle transition.
func (r *RecoveryCoordinator) HandlePhase(ctx context.Context, from, to Phase) error {
	switch {
	case to == PhaseBackground:
		// Ticking stops; elapsed time keeps accruing against the
		// monotonic reference.
		r.engine.HandleBackground()
		return nil

	case to == PhaseForeground:
		return r.engine.HandleForeground(ctx)

	case to == PhaseInterrupted:
		return r.engine.HandleInterruption(ctx)
	}
	return nil
}
