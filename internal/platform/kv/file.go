package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the payload in a single file on disk. Writes go through a
// temp file plus rename so a failed save never truncates the previous state.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore for the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: file store path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("kv: create store dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: read %s: %w", s.path, err)
	}
	return data, true, nil
}

// Save implements Store.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("kv: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("kv: rename %s: %w", s.path, err)
	}
	return nil
}
