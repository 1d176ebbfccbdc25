package forest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/perennial/grove/internal/dates"
)

// Service answers forest queries for the presentation layer.
type Service struct {
	trees  TreeRepository
	logger *slog.Logger
}

// NewService creates a new forest service.
func NewService(trees TreeRepository, logger *slog.Logger) *Service {
	return &Service{trees: trees, logger: logger}
}

// All returns every planted tree, newest first.
func (s *Service) All(ctx context.Context) ([]Tree, error) {
	trees, err := s.trees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing trees: %w", err)
	}
	return trees, nil
}

// ForDay returns the trees whose session started on the given calendar day.
func (s *Service) ForDay(ctx context.Context, day time.Time) ([]Tree, error) {
	trees, err := s.trees.ListByStartDay(ctx, dates.StartOfDay(day))
	if err != nil {
		return nil, fmt.Errorf("listing trees for day: %w", err)
	}
	return trees, nil
}

// Today returns the trees planted today.
func (s *Service) Today(ctx context.Context) ([]Tree, error) {
	return s.ForDay(ctx, time.Now())
}

// Count returns the total number of planted trees.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.trees.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting trees: %w", err)
	}
	return count, nil
}
