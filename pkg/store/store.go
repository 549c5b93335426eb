// Package store maintains the local SQLite index of session summaries so
// recent activity can be listed without rescanning every log file.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codetrail/worklog/pkg/session"
)

// Store wraps the worklog SQLite index.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT NOT NULL,
	source       TEXT NOT NULL,
	path         TEXT NOT NULL,
	project      TEXT NOT NULL DEFAULT '',
	title        TEXT NOT NULL DEFAULT '',
	started_at   INTEGER,
	ended_at     INTEGER,
	user_turns   INTEGER NOT NULL DEFAULT 0,
	asst_turns   INTEGER NOT NULL DEFAULT 0,
	context_pct  REAL NOT NULL DEFAULT 0,
	rot_hits     INTEGER NOT NULL DEFAULT 0,
	smash_hits   INTEGER NOT NULL DEFAULT 0,
	indexed_at   INTEGER NOT NULL,
	PRIMARY KEY (session_id, source)
);
CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions (ended_at DESC);
`

// Open opens (and if needed creates) the index database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert records one session summary, replacing any previous row for the
// same session id and source.
func (s *Store) Upsert(sum *session.Summary) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (
			session_id, source, path, project, title,
			started_at, ended_at, user_turns, asst_turns,
			context_pct, rot_hits, smash_hits, indexed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, source) DO UPDATE SET
			path = excluded.path,
			project = excluded.project,
			title = excluded.title,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			user_turns = excluded.user_turns,
			asst_turns = excluded.asst_turns,
			context_pct = excluded.context_pct,
			rot_hits = excluded.rot_hits,
			smash_hits = excluded.smash_hits,
			indexed_at = excluded.indexed_at
	`,
		sum.SessionID, sum.Source, sum.Path, sum.Project, sum.Title,
		unixOrNil(sum.Started), unixOrNil(sum.Ended),
		sum.Turns.User, sum.Turns.Assistant,
		sum.Context.Pct, sum.Context.RotHits, sum.Context.SmashHits,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Recent returns up to limit indexed sessions, most recently ended first.
// Rows without an end timestamp sort last.
func (s *Store) Recent(limit int) ([]*session.Summary, error) {
	rows, err := s.db.Query(`
		SELECT session_id, source, path, project, title,
		       started_at, ended_at, user_turns, asst_turns,
		       context_pct, rot_hits, smash_hits
		FROM sessions
		ORDER BY ended_at IS NULL, ended_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sums []*session.Summary
	for rows.Next() {
		var sum session.Summary
		var started, ended sql.NullInt64
		if err := rows.Scan(&sum.SessionID, &sum.Source, &sum.Path, &sum.Project, &sum.Title,
			&started, &ended, &sum.Turns.User, &sum.Turns.Assistant,
			&sum.Context.Pct, &sum.Context.RotHits, &sum.Context.SmashHits); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.Started = timeOrNil(started)
		sum.Ended = timeOrNil(ended)
		sums = append(sums, &sum)
	}
	return sums, rows.Err()
}

// Count returns the number of indexed sessions.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
