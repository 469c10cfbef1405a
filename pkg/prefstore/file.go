package prefstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
)

// FileStore keeps each preference document as a JSON file under a base
// directory, one file per key. Writes go through a temp file and rename
// so readers never observe a partial document.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the base directory if needed and returns a store.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("prefstore: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prefstore: create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// ReadRaw returns the stored document or dashboard.ErrNotFound.
func (s *FileStore) ReadRaw(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, dashboard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("prefstore: read %s: %w", key, err)
	}
	return data, nil
}

// WriteRaw atomically replaces the document for key.
func (s *FileStore) WriteRaw(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, ".pref-*")
	if err != nil {
		return fmt.Errorf("prefstore: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("prefstore: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("prefstore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("prefstore: replace %s: %w", key, err)
	}
	return nil
}

// pathFor maps a key to a file name. Keys contain dots but must not
// escape the base directory.
func (s *FileStore) pathFor(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("prefstore: key is required")
	}
	name := key + ".json"
	if filepath.Base(name) != name {
		return "", fmt.Errorf("prefstore: invalid key %q", key)
	}
	return filepath.Join(s.dir, name), nil
}

var _ dashboard.PreferenceBackend = (*FileStore)(nil)
