package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/perennial/grove/internal/clock"
	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/domain/session"
	"github.com/perennial/grove/internal/repository"
)

// SessionRepository implements repository.SessionRepository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, start_time, start_day, end_time, elapsed_seconds, status, tree_stage, monotonic_reference`

// Create inserts a new session record
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sess.ID,
		sess.StartTime,
		formatDay(sess.StartDay),
		sess.EndTime,
		sess.ElapsedSeconds,
		string(sess.Status),
		sess.TreeStage,
		float64(sess.MonotonicReference),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Update persists the mutable fields of a session record
func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	query := `
		UPDATE sessions
		SET end_time = ?, elapsed_seconds = ?, status = ?,
		    tree_stage = ?, monotonic_reference = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sess.EndTime,
		sess.ElapsedSeconds,
		string(sess.Status),
		sess.TreeStage,
		float64(sess.MonotonicReference),
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

// FindByStatus returns the single session matching any of the given
// statuses. At most one non-terminal record exists at a time; if multiple
// match, the most recently started wins.
func (r *SessionRepository) FindByStatus(ctx context.Context, statuses ...session.Status) (*session.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE status IN (` + statusPlaceholders(len(statuses)) + `)
		ORDER BY start_time DESC
		LIMIT 1
	`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, statusArgs(statuses)...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by status: %w", err)
	}

	return sess, nil
}

// ListByStatus returns all sessions matching any of the given statuses
func (r *SessionRepository) ListByStatus(ctx context.Context, statuses ...session.Status) ([]session.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE status IN (` + statusPlaceholders(len(statuses)) + `)
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, statusArgs(statuses)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListByStartDay returns all sessions that started on the given calendar day
func (r *SessionRepository) ListByStartDay(ctx context.Context, day time.Time) ([]session.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE start_day = ?
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by day: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// CountByStatus returns the number of sessions with the given status
func (r *SessionRepository) CountByStatus(ctx context.Context, status session.Status) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE status = ?`, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Complete durably applies a completion transition: the session update and
// the tree insert happen in one transaction. The trees table keys on
// session_id, so retrying a partially failed completion never plants a
// second tree.
func (r *SessionRepository) Complete(ctx context.Context, sess *session.Session, tree *forest.Tree) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin completion: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET end_time = ?, elapsed_seconds = ?, status = ?,
		    tree_stage = ?, monotonic_reference = ?
		WHERE id = ?
	`,
		sess.EndTime,
		sess.ElapsedSeconds,
		string(sess.Status),
		sess.TreeStage,
		float64(sess.MonotonicReference),
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trees (id, session_id, start_time, completion_time, start_day, visual_stage)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO NOTHING
	`,
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
		return fmt.Errorf("failed to plant tree: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit completion: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var sess session.Session
	var startDay string
	var endTime sql.NullTime
	var status string
	var reference float64

	err := row.Scan(
		&sess.ID,
		&sess.StartTime,
		&startDay,
		&endTime,
		&sess.ElapsedSeconds,
		&status,
		&sess.TreeStage,
		&reference,
	)
	if err != nil {
		return nil, err
	}

	sess.Status, err = session.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	sess.StartDay, err = parseDay(startDay)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		sess.EndTime = &endTime.Time
	}
	sess.MonotonicReference = clock.Reading(reference)

	return &sess, nil
}

func collectSessions(rows *sql.Rows) ([]session.Session, error) {
	var sessions []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

func statusPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func statusArgs(statuses []session.Status) []any {
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = string(s)
	}
	return args
}
