package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/perennial/grove/internal/domain/stats"
	"github.com/perennial/grove/internal/repository"
)

// StreakRepository implements repository.StreakRepository for SQLite
type StreakRepository struct {
	db *DB
}

// NewStreakRepository creates a new StreakRepository
func NewStreakRepository(db *DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get retrieves the streak singleton
func (r *StreakRepository) Get(ctx context.Context) (*stats.StreakData, error) {
	query := `
		SELECT id, current_streak, last_session_start_day
		FROM streak
		LIMIT 1
	`

	var data stats.StreakData
	var lastDay sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(&data.ID, &data.CurrentStreak, &lastDay)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	if lastDay.Valid {
		day, err := parseDay(lastDay.String)
		if err != nil {
			return nil, err
		}
		data.LastSessionStartDay = day
	}

	return &data, nil
}

// Save upserts the streak singleton. A zero LastSessionStartDay persists as
// NULL, the "never" sentinel.
func (r *StreakRepository) Save(ctx context.Context, data *stats.StreakData) error {
	var lastDay any
	if !data.LastSessionStartDay.IsZero() {
		lastDay = formatDay(data.LastSessionStartDay)
	}

	query := `
		INSERT INTO streak (id, current_streak, last_session_start_day)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_streak = excluded.current_streak,
			last_session_start_day = excluded.last_session_start_day
	`

	_, err := r.db.ExecContext(ctx, query, data.ID, data.CurrentStreak, lastDay)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}

	return nil
}
