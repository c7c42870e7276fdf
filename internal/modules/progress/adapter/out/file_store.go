package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	progressout "tutorcast/internal/modules/progress/port/out"
	"tutorcast/internal/platform/slug"
)

// FileStore writes one JSON document per key under dataDir/session.
type FileStore struct {
	dir string
}

func NewFileStore(dataDir string) progressout.KVStore {
	return &FileStore{dir: filepath.Join(dataDir, "session")}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, slug.FileName(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read session state: %w", err)
	}
	return string(payload), true, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit session state: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
