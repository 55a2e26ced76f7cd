// Package history provides a local SQLite audit log of workflow
// transitions (.gaffer/history.db). The log is advisory: the registry
// file stays the single source of truth, recording is best-effort, and
// the log plays no part in concurrency control between agents.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Event is one recorded workflow transition.
type Event struct {
	// ID is the unique identifier for this event.
	ID string
	// Action is the transition performed: claim, submit, approve, merge.
	Action string
	// TaskID is the task the transition applied to.
	TaskID string
	// Agent is the name of the acting agent.
	Agent string
	// Detail carries transition-specific context (branch, PR number).
	Detail string
	// CreatedAt is when the event was recorded.
	CreatedAt time.Time
}

// DB wraps an SQLite database holding the audit log.
type DB struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// ProjectDBPath returns the path to a repository's audit database.
func ProjectDBPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".gaffer", "history.db")
}

// Open opens the audit database at the given path, creating parent
// directories as needed. WAL mode is enabled for concurrent reads.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// OpenProject opens the audit database for a repository.
func OpenProject(repoRoot string) (*DB, error) {
	return Open(ProjectDBPath(repoRoot))
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}

// Path returns the path to the database file.
func (db *DB) Path() string {
	return db.path
}

const migrationV1Events = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	action TEXT NOT NULL,
	task_id TEXT NOT NULL,
	agent TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_events_task ON events(task_id);
`

// migrate applies pending schema migrations.
func (db *DB) migrate() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Events},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// Record appends an event to the log.
func (db *DB) Record(action, taskID, agent, detail string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(
		"INSERT INTO events (id, action, task_id, agent, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), action, taskID, agent, detail, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// List returns events newest first. A non-empty taskID filters to one
// task; limit <= 0 means no limit.
func (db *DB) List(taskID string, limit int) ([]Event, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := "SELECT id, action, task_id, agent, detail, created_at FROM events"
	var args []interface{}
	if taskID != "" {
		query += " WHERE task_id = ?"
		args = append(args, taskID)
	}
	query += " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Action, &ev.TaskID, &ev.Agent, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
