package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS seen_flags (
	key        TEXT PRIMARY KEY,
	seen_at    INTEGER NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

// SeenStore implements ports.SeenStore backed by SQLite.
type SeenStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path. Use ":memory:" for tests.
func Open(path string) (*SeenStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SeenStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SeenStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// MarkSeen upserts the flag. expires_at = 0 means no expiry.
func (s *SeenStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) error {
	now := s.now()
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).UnixNano()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seen_flags (key, seen_at, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET seen_at = excluded.seen_at, expires_at = excluded.expires_at`,
		key, now.UnixNano(), expires)
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

// Seen reports whether an unexpired flag exists.
func (s *SeenStore) Seen(ctx context.Context, key string) (bool, error) {
	var expires int64
	err := s.db.QueryRowContext(ctx, `SELECT expires_at FROM seen_flags WHERE key = ?`, key).Scan(&expires)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen: %w", err)
	}
	return expires == 0 || s.now().UnixNano() < expires, nil
}

// Forget removes the flag.
func (s *SeenStore) Forget(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_flags WHERE key = ?`, key); err != nil {
		return fmt.Errorf("forget seen: %w", err)
	}
	return nil
}

// Prune deletes expired flags and returns how many were removed.
func (s *SeenStore) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM seen_flags WHERE expires_at > 0 AND expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune seen: %w", err)
	}
	return res.RowsAffected()
}
