package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/perennial/grove/internal/dates"
	"github.com/perennial/grove/internal/repository/repoerr"
)

// minutesPerTree is the focus time each completed session represents.
const minutesPerTree = 25

// FocusTime is an hours/minutes split of accumulated focus time.
type FocusTime struct {
	Hours   int
	Minutes int
}

// NewFocusTime splits a total minute count.
func NewFocusTime(totalMinutes int) FocusTime {
	return FocusTime{Hours: totalMinutes / 60, Minutes: totalMinutes % 60}
}

func (f FocusTime) String() string {
	if f.Hours == 0 {
		return fmt.Sprintf("%dm", f.Minutes)
	}
	return fmt.Sprintf("%dh %dm", f.Hours, f.Minutes)
}

// Service owns the streak singleton and the tamper log, and derives
// aggregate statistics from the forest.
type Service struct {
	streaks StreakRepository
	tampers TamperRepository
	trees   TreeCounter
	logger  *slog.Logger
}

// NewService creates a new stats service.
func NewService(streaks StreakRepository, tampers TamperRepository, trees TreeCounter, logger *slog.Logger) *Service {
	return &Service{streaks: streaks, tampers: tampers, trees: trees, logger: logger}
}

// CurrentStreak returns the streak count, lazily creating the zero-state
// singleton on first access.
func (s *Service) CurrentStreak(ctx context.Context) (int, error) {
	data, err := s.loadOrCreate(ctx)
	if err != nil {
		return 0, err
	}
	return data.CurrentStreak, nil
}

// RecordCompletion consumes a completed session's start day into the streak.
// Applying the same day twice is a no-op, so completion retries are safe.
func (s *Service) RecordCompletion(ctx context.Context, startDay time.Time) error {
	data, err := s.loadOrCreate(ctx)
	if err != nil {
		return err
	}

	updated := AdvanceStreak(*data, startDay)
	if err := s.streaks.Save(ctx, &updated); err != nil {
		return fmt.Errorf("saving streak: %w", err)
	}
	return nil
}

// LogTimeJump appends one tamper event to the audit log.
func (s *Service) LogTimeJump(ctx context.Context, magnitude float64) error {
	if err := s.tampers.Append(ctx, NewTamperEvent(magnitude)); err != nil {
		return fmt.Errorf("appending tamper event: %w", err)
	}
	return nil
}

// TamperEvents returns logged anomalies, newest first.
func (s *Service) TamperEvents(ctx context.Context, limit int) ([]TamperEvent, error) {
	events, err := s.tampers.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing tamper events: %w", err)
	}
	return events, nil
}

// TotalTreesPlanted returns the all-time completed session count.
func (s *Service) TotalTreesPlanted(ctx context.Context) (int, error) {
	count, err := s.trees.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting trees: %w", err)
	}
	return count, nil
}

// TotalFocusTime returns accumulated focus time across all trees.
func (s *Service) TotalFocusTime(ctx context.Context) (FocusTime, error) {
	count, err := s.TotalTreesPlanted(ctx)
	if err != nil {
		return FocusTime{}, err
	}
	return NewFocusTime(count * minutesPerTree), nil
}

// TodaysTreeCount returns how many trees were planted today.
func (s *Service) TodaysTreeCount(ctx context.Context) (int, error) {
	count, err := s.trees.CountByStartDay(ctx, dates.StartOfDay(time.Now()))
	if err != nil {
		return 0, fmt.Errorf("counting today's trees: %w", err)
	}
	return count, nil
}

func (s *Service) loadOrCreate(ctx context.Context) (*StreakData, error) {
	data, err := s.streaks.Get(ctx)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, repoerr.ErrNotFound) {
		return nil, fmt.Errorf("loading streak: %w", err)
	}

	data = NewStreakData()
	if err := s.streaks.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("initializing streak: %w", err)
	}
	return data, nil
}
