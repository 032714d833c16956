package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresmejia3/smilecam/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store is the optional PostgreSQL catalog of saved captures.
// The capture gate never reads from it.
type Store struct {
	conn *pgx.Conn
}

// New establishes a connection to the database and ensures the schema is initialized.
func New(ctx context.Context, connString string) (*Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Initialize schema (Auto-Migration)
	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// initSchema creates the tables if they don't exist (Auto-Migration).
func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS capture_sessions (
			id UUID PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ended_at TIMESTAMPTZ,
			capture_count INT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS captures (
			id BIGSERIAL PRIMARY KEY,
			session_id UUID REFERENCES capture_sessions(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			taken_at TIMESTAMPTZ NOT NULL,
			trigger TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS captures_taken_at_idx ON captures (taken_at);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// Close terminates the database connection.
func (s *Store) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

// StartSession registers a new run and returns its ID.
func (s *Store) StartSession(ctx context.Context, startedAt time.Time) (string, error) {
	id := uuid.New()
	_, err := s.conn.Exec(ctx, "INSERT INTO capture_sessions (id, started_at) VALUES ($1, $2)", id, startedAt)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// EndSession stamps the end time and final capture count of a run.
func (s *Store) EndSession(ctx context.Context, id string, endedAt time.Time, count int) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", id, err)
	}
	_, err = s.conn.Exec(ctx,
		"UPDATE capture_sessions SET ended_at = $1, capture_count = $2 WHERE id = $3",
		endedAt, count, sid)
	return err
}

// RecordCapture saves one capture and returns its row ID.
func (s *Store) RecordCapture(ctx context.Context, c types.Capture) (int64, error) {
	var sessionID *uuid.UUID
	if c.SessionID != "" {
		sid, err := uuid.Parse(c.SessionID)
		if err != nil {
			return 0, fmt.Errorf("invalid session id %q: %w", c.SessionID, err)
		}
		sessionID = &sid
	}

	var id int64
	err := s.conn.QueryRow(ctx, `
		INSERT INTO captures (session_id, name, path, taken_at, trigger)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, sessionID, c.Name, c.Path, c.TakenAt, c.Trigger).Scan(&id)
	return id, err
}

// ListCaptures returns every catalogued capture, newest first.
func (s *Store) ListCaptures(ctx context.Context) ([]types.Capture, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, COALESCE(session_id::text, ''), name, path, taken_at, trigger
		FROM captures
		ORDER BY taken_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Capture
	for rows.Next() {
		var c types.Capture
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Name, &c.Path, &c.TakenAt, &c.Trigger); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListSessions returns every run, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]types.Session, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id::text, started_at, ended_at, capture_count
		FROM capture_sessions
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Session
	for rows.Next() {
		var ss types.Session
		if err := rows.Scan(&ss.ID, &ss.StartedAt, &ss.EndedAt, &ss.CaptureCount); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

// ErrNotFound is returned when no catalogued capture has the given name.
var ErrNotFound = errors.New("capture not found")

// DeleteCapture removes every catalog row for the file name.
func (s *Store) DeleteCapture(ctx context.Context, name string) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM captures WHERE name = $1", name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCaptures empties the catalog but keeps session history.
func (s *Store) ClearCaptures(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM captures")
	return err
}

// Reset drops all application tables to clear the database state.
// This is useful for development to force a schema refresh without migrations.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `
		DROP TABLE IF EXISTS captures CASCADE;
		DROP TABLE IF EXISTS capture_sessions CASCADE;
	`)
	return err
}
