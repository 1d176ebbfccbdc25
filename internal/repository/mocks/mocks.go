package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/domain/stats"
)

// SessionRepository is a mock for repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) FindByStatus(ctx context.Context, statuses ...session.Status) (*session.Session, error) {
	args := m.Called(ctx, statuses)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) ListByStatus(ctx context.Context, statuses ...session.Status) ([]session.Session, error) {
	args := m.Called(ctx, statuses)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) ListByStartDay(ctx context.Context, day time.Time) ([]session.Session, error) {
	args := m.Called(ctx, day)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) CountByStatus(ctx context.Context, status session.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *SessionRepository) Complete(ctx context.Context, sess *session.Session, tree *forest.Tree) error {
	args := m.Called(ctx, sess, tree)
	return args.Error(0)
}

// TreeRepository is a mock for repository.TreeRepository.
type TreeRepository struct {
	mock.Mock
}

func (m *TreeRepository) Create(ctx context.Context, tree *forest.Tree) error {
	args := m.Called(ctx, tree)
	return args.Error(0)
}

func (m *TreeRepository) List(ctx context.Context) ([]forest.Tree, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]forest.Tree); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TreeRepository) ListByStartDay(ctx context.Context, day time.Time) ([]forest.Tree, error) {
	args := m.Called(ctx, day)
	if list, ok := args.Get(0).([]forest.Tree); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TreeRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *TreeRepository) CountByStartDay(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

// StreakRepository is a mock for repository.StreakRepository.
type StreakRepository struct {
	mock.Mock
}

func (m *StreakRepository) Get(ctx context.Context) (*stats.StreakData, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).(*stats.StreakData); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StreakRepository) Save(ctx context.Context, data *stats.StreakData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// TamperRepository is a mock for repository.TamperRepository.
type TamperRepository struct {
	mock.Mock
}

func (m *TamperRepository) Append(ctx context.Context, event *stats.TamperEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *TamperRepository) List(ctx context.Context, limit int) ([]stats.TamperEvent, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]stats.TamperEvent); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// StreakRecorder is a mock for session.StreakRecorder.
type StreakRecorder struct {
	mock.Mock
}

func (m *StreakRecorder) RecordCompletion(ctx context.Context, startDay time.Time) error {
	args := m.Called(ctx, startDay)
	return args.Error(0)
}

// TamperLogger is a mock for session.TamperLogger.
type TamperLogger struct {
	mock.Mock
}

func (m *TamperLogger) LogTimeJump(ctx context.Context, magnitude float64) error {
	args := m.Called(ctx, magnitude)
	return args.Error(0)
}
