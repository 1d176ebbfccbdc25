package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/perennial/grove/internal/clock"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/repository/mocks"
)

func TestRecovery_AbandonStale(t *testing.T) {
	repo := &mocks.SessionRepository{}
	coord := session.NewRecoveryCoordinator(repo, nil, nil)

	stale := []session.Session{
		{ID: "a", Status: session.StatusActive, StartTime: time.Now().Add(-time.Hour)},
		{ID: "b", Status: session.StatusPaused, StartTime: time.Now().Add(-2 * time.Hour)},
	}
	repo.On("ListByStatus", mock.Anything,
		[]session.Status{session.StatusActive, session.StatusPaused},
	).Return(stale, nil).Once()
	repo.On("Update", mock.Anything,
		mock.MatchedBy(func(s *session.Session) bool {
			return s.Status == session.StatusAbandoned && s.EndTime != nil
		}),
	).Return(nil).Twice()

	count, err := coord.AbandonStale(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
	repo.AssertExpectations(t)
}

func TestRecovery_AbandonStaleIsIdempotent(t *testing.T) {
	repo := &mocks.SessionRepository{}
	coord := session.NewRecoveryCoordinator(repo, nil, nil)

	// A second cold launch finds nothing to clean up.
	repo.On("ListByStatus", mock.Anything, mock.Anything).
		Return([]session.Session{}, nil)

	count, err := coord.AbandonStale(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecovery_AbandonStaleListFailure(t *testing.T) {
	repo := &mocks.SessionRepository{}
	coord := session.NewRecoveryCoordinator(repo, nil, nil)

	repo.On("ListByStatus", mock.Anything, mock.Anything).
		Return(nil, errors.New("db unavailable"))

	_, err := coord.AbandonStale(context.Background())
	require.Error(t, err)
}

func TestRecovery_HandlePhase(t *testing.T) {
	repo := &mocks.SessionRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("FindByStatus", mock.Anything, mock.Anything).
		Return(&session.Session{ID: "persisted"}, nil)

	engine := session.NewEngine(
		repo, &mocks.StreakRecorder{}, &mocks.TamperLogger{}, &notifierSpy{},
		clock.NewFake(0), nil,
	)
	t.Cleanup(engine.Close)
	coord := session.NewRecoveryCoordinator(repo, engine, nil)

	ctx := context.Background()
	require.NoError(t, engine.Start(ctx))

	require.NoError(t, coord.HandlePhase(ctx, session.PhaseForeground, session.PhaseBackground))
	require.Equal(t, session.StateActive, engine.State())

	require.NoError(t, coord.HandlePhase(ctx, session.PhaseBackground, session.PhaseForeground))
	require.Equal(t, session.StateActive, engine.State())

	require.NoError(t, coord.HandlePhase(ctx, session.PhaseForeground, session.PhaseInterrupted))
	require.Equal(t, session.StatePaused, engine.State())
}
