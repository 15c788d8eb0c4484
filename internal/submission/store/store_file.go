package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"intake/internal/submission"
	"intake/pkg/platform/sentinel"
)

// DefaultFileName is the document name inside the data directory.
const DefaultFileName = "submissions.json"

// FileStore keeps the collection as a single pretty-printed JSON array.
// Append reads the whole document, adds the record and rewrites the whole
// document; the rewrite lands in a temporary sibling that is renamed over the
// target. The mutex serializes appends within the process so concurrent
// requests cannot lose each other's records.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore returns a store for the document at path. Nothing is touched
// on disk until the first Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the JSON document.
func (s *FileStore) Path() string {
	return s.path
}

// ReadAll loads every submission in insertion order.
func (s *FileStore) ReadAll(_ context.Context) ([]submission.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Append adds sub to the end of the collection.
func (s *FileStore) Append(ctx context.Context, sub submission.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.load()
	if err != nil {
		return err
	}
	subs = append(subs, sub)
	return s.save(subs)
}

func (s *FileStore) load() ([]submission.Submission, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", sentinel.ErrUnavailable, s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return emptyCollection(), nil
	}

	var subs []submission.Submission
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", sentinel.ErrInvalidState, s.path, err)
	}
	if subs == nil {
		return emptyCollection(), nil
	}
	return subs, nil
}

func (s *FileStore) save(subs []submission.Submission) error {
	payload, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory %s: %w", sentinel.ErrUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %w", sentinel.ErrUnavailable, dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", sentinel.ErrUnavailable, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", sentinel.ErrUnavailable, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", sentinel.ErrUnavailable, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", sentinel.ErrUnavailable, tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", sentinel.ErrUnavailable, s.path, err)
	}
	committed = true
	return nil
}
