package sqlite

import (
	"context"
	"fmt"

	"github.com/perennial/grove/internal/domain/stats"
)

// TamperRepository implements repository.TamperRepository for SQLite
type TamperRepository struct {
	db *DB
}

// NewTamperRepository creates a new TamperRepository
func NewTamperRepository(db *DB) *TamperRepository {
	return &TamperRepository{db: db}
}

// Append inserts one tamper event. Events are never updated or deleted.
func (r *TamperRepository) Append(ctx context.Context, event *stats.TamperEvent) error {
	query := `
		INSERT INTO tamper_events (id, detected_at, time_jump_seconds)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, event.ID, event.Timestamp, event.TimeJumpMagnitude)
	if err != nil {
		return fmt.Errorf("failed to append tamper event: %w", err)
	}

	return nil
}

// List returns tamper events, newest first. A non-positive limit returns all.
func (r *TamperRepository) List(ctx context.Context, limit int) ([]stats.TamperEvent, error) {
	query := `
		SELECT id, detected_at, time_jump_seconds
		FROM tamper_events
		ORDER BY detected_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tamper events: %w", err)
	}
	defer rows.Close()

	var events []stats.TamperEvent
	for rows.Next() {
		var event stats.TamperEvent
		if err := rows.Scan(&event.ID, &event.Timestamp, &event.TimeJumpMagnitude); err != nil {
			return nil, fmt.Errorf("failed to scan tamper event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tamper events: %w", err)
	}

	return events, nil
}
