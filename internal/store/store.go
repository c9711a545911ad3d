package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/courtside/courtside/internal/errs"
)

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    path       TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pipeline_runs (
    video_id      TEXT PRIMARY KEY,
    status        TEXT NOT NULL,
    style         TEXT NOT NULL DEFAULT '',
    commentary_id TEXT NOT NULL DEFAULT '',
    audio_id      TEXT NOT NULL DEFAULT '',
    result_id     TEXT NOT NULL DEFAULT '',
    error         TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);
`

// Store manages the artifact index and pipeline run markers backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database and applies the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PutArtifact records a new identifier-to-path mapping. Identifiers are
// generated at creation time and never reused, so inserts never conflict.
func (s *Store) PutArtifact(ctx context.Context, a Artifact) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO artifacts (id, kind, path, created_at) VALUES (?, ?, ?, ?)`,
		a.ID,
		string(a.Kind),
		a.Path,
		a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

// GetArtifact resolves an identifier to its artifact record.
func (s *Store) GetArtifact(ctx context.Context, id string) (*Artifact, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, kind, path, created_at FROM artifacts WHERE id = ?`,
		id,
	)

	var a Artifact
	var kind, createdAt string
	if err := row.Scan(&a.ID, &kind, &a.Path, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("artifact %s", id), nil)
		}
		return nil, fmt.Errorf("query artifact: %w", err)
	}

	a.Kind = Kind(kind)
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		a.CreatedAt = ts
	}
	return &a, nil
}

// DeleteArtifact removes an identifier mapping.
func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.Wrap(errs.ErrNotFound, fmt.Sprintf("artifact %s", id), nil)
	}
	return nil
}

// CreateRun inserts a new run marker in the Uploaded state.
func (s *Store) CreateRun(ctx context.Context, videoID string) (*Run, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO pipeline_runs (video_id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		videoID,
		string(StatusUploaded),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	return s.GetRun(ctx, videoID)
}

// GetRun loads the run marker for a video.
func (s *Store) GetRun(ctx context.Context, videoID string) (*Run, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT video_id, status, style, commentary_id, audio_id, result_id, error, created_at, updated_at
         FROM pipeline_runs WHERE video_id = ?`,
		videoID,
	)

	var r Run
	var status, createdAt, updatedAt string
	err := row.Scan(&r.VideoID, &status, &r.Style, &r.CommentaryID, &r.AudioID, &r.ResultID, &r.Error, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("run %s", videoID), nil)
		}
		return nil, fmt.Errorf("query run: %w", err)
	}

	r.Status = RunStatus(status)
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		r.UpdatedAt = ts
	}
	return &r, nil
}

// UpdateRun persists the run's current fields after validating the status
// transition against the stored row.
func (s *Store) UpdateRun(ctx context.Context, r *Run) error {
	current, err := s.GetRun(ctx, r.VideoID)
	if err != nil {
		return err
	}
	if current.Status != r.Status && !ValidTransition(current.Status, r.Status) {
		return errs.Wrap(errs.ErrValidation,
			fmt.Sprintf("invalid run transition %s -> %s", current.Status, r.Status), nil)
	}

	r.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(
		ctx,
		`UPDATE pipeline_runs
         SET status = ?, style = ?, commentary_id = ?, audio_id = ?, result_id = ?, error = ?, updated_at = ?
         WHERE video_id = ?`,
		string(r.Status),
		r.Style,
		r.CommentaryID,
		r.AudioID,
		r.ResultID,
		r.Error,
		r.UpdatedAt.Format(time.RFC3339Nano),
		r.VideoID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// DeleteRun removes the run marker for a video.
func (s *Store) DeleteRun(ctx context.Context, videoID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pipeline_runs WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
