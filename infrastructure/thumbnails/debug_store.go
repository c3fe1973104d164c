package thumbnails

import (
	"os"
	"path/filepath"

	"youtube-fetcher/domain/repository"
)

// FileDebugStore writes downloaded thumbnails to a local directory for
// operator inspection. Callers treat every failure as non-fatal.
type FileDebugStore struct {
	dir string
}

// NewFileDebugStore creates the store; an empty dir yields a no-op store
func NewFileDebugStore(dir string) repository.IDebugStore {
	if dir == "" {
		return &noopDebugStore{}
	}
	return &FileDebugStore{dir: dir}
}

func (s *FileDebugStore) Save(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

type noopDebugStore struct{}

func (s *noopDebugStore) Save(string, []byte) error {
	return nil
}
