package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SeenStore implements ports.SeenStore as a JSON "cookie jar" on the local filesystem.
// All flags live in a single file that is rewritten atomically.
type SeenStore struct {
	Path string

	mu  sync.Mutex
	now func() time.Time
}

type record struct {
	SeenAt    time.Time  `json:"seen_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// New creates a SeenStore backed by path.
// If path is empty, it defaults to ".walkthrough/seen.json".
func New(path string) *SeenStore {
	if path == "" {
		path = filepath.Join(".walkthrough", "seen.json")
	}
	return &SeenStore{Path: path, now: time.Now}
}

// MarkSeen records the flag.
func (s *SeenStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	jar, err := s.read()
	if err != nil {
		return err
	}
	now := s.now()
	rec := record{SeenAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		rec.ExpiresAt = &exp
	}
	jar[key] = rec
	return s.write(jar)
}

// Seen reports whether an unexpired flag exists.
func (s *SeenStore) Seen(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jar, err := s.read()
	if err != nil {
		return false, err
	}
	rec, ok := jar[key]
	if !ok {
		return false, nil
	}
	return rec.ExpiresAt == nil || s.now().Before(*rec.ExpiresAt), nil
}

// Forget removes the flag.
func (s *SeenStore) Forget(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jar, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := jar[key]; !ok {
		return nil
	}
	delete(jar, key)
	return s.write(jar)
}

func (s *SeenStore) read() (map[string]record, error) {
	jar := make(map[string]record)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return jar, nil
		}
		return nil, fmt.Errorf("failed to read seen file: %w", err)
	}
	if len(data) == 0 {
		return jar, nil
	}
	if err := json.Unmarshal(data, &jar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seen file: %w", err)
	}
	return jar, nil
}

// write persists the jar atomically: temp file, fsync, rename.
func (s *SeenStore) write(jar map[string]record) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure seen directory: %w", err)
	}

	data, err := json.MarshalIndent(jar, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen flags: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-seen-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("failed to replace seen file: %w", err)
	}
	return nil
}
