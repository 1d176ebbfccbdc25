package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/repository"
)

// TreeRepository implements repository.TreeRepository for SQLite
type TreeRepository struct {
	db *DB
}

// NewTreeRepository creates a new TreeRepository
func NewTreeRepository(db *DB) *TreeRepository {
	return &TreeRepository{db: db}
}

const treeColumns = `id, session_id, start_time, completion_time, start_day, visual_stage`

// Create inserts a completed tree
func (r *TreeRepository) Create(ctx context.Context, tree *forest.Tree) error {
	query := `
		INSERT INTO trees (` + treeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tree.ID,
		tree.SessionID,
		tree.StartTime,
		tree.CompletionTime,
		formatDay(tree.StartDay),
		tree.VisualStage,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create tree: %w", err)
	}

	return nil
}

// List returns all trees, most recently completed first
func (r *TreeRepository) List(ctx context.Context) ([]forest.Tree, error) {
	query := `
		SELECT ` + treeColumns + `
		FROM trees
		ORDER BY completion_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	defer rows.Close()

	return collectTrees(rows)
}

// ListByStartDay returns trees whose session started on the given day
func (r *TreeRepository) ListByStartDay(ctx context.Context, day time.Time) ([]forest.Tree, error) {
	query := `
		SELECT ` + treeColumns + `
		FROM trees
		WHERE start_day = ?
		ORDER BY completion_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list trees by day: %w", err)
	}
	defer rows.Close()

	return collectTrees(rows)
}

// Count returns the total number of trees
func (r *TreeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trees: %w", err)
	}
	return count, nil
}

// CountByStartDay returns the number of trees for the given day
func (r *TreeRepository) CountByStartDay(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trees WHERE start_day = ?`, formatDay(day),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trees by day: %w", err)
	}
	return count, nil
}

func collectTrees(rows *sql.Rows) ([]forest.Tree, error) {
	var trees []forest.Tree
	for rows.Next() {
		var tree forest.Tree
		var startDay string
		if err := rows.Scan(
			&tree.ID,
			&tree.SessionID,
			&tree.StartTime,
			&tree.CompletionTime,
			&startDay,
			&tree.VisualStage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tree: %w", err)
		}
		day, err := parseDay(startDay)
		if err != nil {
			return nil, err
		}
		tree.StartDay = day
		trees = append(trees, tree)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trees: %w", err)
	}
	return trees, nil
}
