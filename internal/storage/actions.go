package storage

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ActionLog is the interface the front door appends through.
type ActionLog interface {
	// Append records an action. A zero ID or Timestamp is filled in.
	Append(rec ActionRecord) error

	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]ActionRecord, error)

	// Close closes the underlying database.
	Close() error
}

// SQLiteActionLog implements ActionLog over a local SQLite file.
type SQLiteActionLog struct {
	db      *sql.DB
	dbPath  string
	enabled bool
	mu      sync.Mutex
}

// Open opens (creating if needed) the action-log database at dbPath. When
// the database cannot be opened the log runs disabled: appends become
// no-ops and reads return nothing, because audit records must never block
// a review or promotion.
func Open(dbPath string) *SQLiteActionLog {
	s := &SQLiteActionLog{dbPath: dbPath}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Printf("Warning: action log disabled, cannot open %s: %v", dbPath, err)
		return s
	}
	if err := db.Ping(); err != nil {
		log.Printf("Warning: action log disabled, cannot open %s: %v", dbPath, err)
		db.Close()
		return s
	}

	s.db = db
	s.enabled = true

	if err := s.runMigrations(); err != nil {
		log.Printf("Warning: action log disabled, migration failed: %v", err)
		s.db.Close()
		s.db = nil
		s.enabled = false
	}
	return s
}

// runMigrations executes schema migrations in order.
func (s *SQLiteActionLog) runMigrations() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "action_log", up: s.migration001ActionLog},
	}

	for _, m := range migrations {
		if version >= m.version {
			continue
		}
		if err := m.up(); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.version, m.name,
		); err != nil {
			return err
		}
	}
	return nil
}

type migration struct {
	version int
	name    string
	up      func() error
}

func (s *SQLiteActionLog) migration001ActionLog() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS action_log (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			reason TEXT NOT NULL,
			skill_path TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create action_log table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_action_log_timestamp
		ON action_log(timestamp)
	`); err != nil {
		return fmt.Errorf("failed to create action_log index: %w", err)
	}
	return nil
}

// Append records an action. Failures are logged and swallowed.
func (s *SQLiteActionLog) Append(rec ActionRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO action_log (id, type, title, source, status, reason, skill_path, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Type,
		rec.Title,
		rec.Source,
		rec.Status,
		rec.Reason,
		rec.SkillPath,
		rec.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		log.Printf("Warning: failed to record action: %v", err)
	}
	return nil
}

// Recent returns the newest limit records, newest first.
func (s *SQLiteActionLog) Recent(limit int) ([]ActionRecord, error) {
	if !s.enabled || s.db == nil {
		return []ActionRecord{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, type, title, source, status, reason, skill_path, timestamp
		FROM action_log
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query action log: %w", err)
	}
	defer rows.Close()

	records := []ActionRecord{}
	for rows.Next() {
		var rec ActionRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Title, &rec.Source,
			&rec.Status, &rec.Reason, &rec.SkillPath, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan action record: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteActionLog) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
