package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist. Four independent
// collections: sessions, trees, the streak singleton, and the tamper log.
func (db *DB) RunMigrations() error {
	migration := `
-- Focus session records
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    start_time TIMESTAMP NOT NULL,
    start_day TEXT NOT NULL,
    end_time TIMESTAMP,
    elapsed_seconds INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK(status IN ('active', 'paused', 'completed', 'abandoned')),
    tree_stage INTEGER NOT NULL DEFAULT 1,
    monotonic_reference REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
CREATE INDEX IF NOT EXISTS idx_sessions_start_day ON sessions(start_day);

-- Completed trees, one per completed session
CREATE TABLE IF NOT EXISTS trees (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL UNIQUE,
    start_time TIMESTAMP NOT NULL,
    completion_time TIMESTAMP NOT NULL,
    start_day TEXT NOT NULL,
    visual_stage INTEGER NOT NULL DEFAULT 5,
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);
CREATE INDEX IF NOT EXISTS idx_trees_start_day ON trees(start_day);
CREATE INDEX IF NOT EXISTS idx_trees_completion ON trees(completion_time);

-- Streak singleton
CREATE TABLE IF NOT EXISTS streak (
    id TEXT PRIMARY KEY,
    current_streak INTEGER NOT NULL DEFAULT 0,
    last_session_start_day TEXT
);

-- Append-only anti-tamper log
CREATE TABLE IF NOT EXISTS tamper_events (
    id TEXT PRIMARY KEY,
    detected_at TIMESTAMP NOT NULL,
    time_jump_seconds REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tamper_detected ON tamper_events(detected_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
