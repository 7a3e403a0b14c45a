package drafts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-methodlib/method"
)

// FileStore keeps the snapshot as <dir>/<slot>.json.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created on first write.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("drafts: file store requires a directory")
	}
	o := resolveOptions(opts)
	return &FileStore{path: filepath.Join(dir, o.slot+".json")}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Write(_ context.Context, draft method.Method) error {
	payload, err := Encode(draft)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("drafts: create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".draft-*")
	if err != nil {
		return fmt.Errorf("drafts: create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("drafts: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("drafts: close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("drafts: replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Read(_ context.Context) (*method.Method, error) {
	s.mu.Lock()
	payload, err := os.ReadFile(s.path)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("drafts: read snapshot: %w", err)
	}
	return Decode(payload)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("drafts: remove snapshot: %w", err)
	}
	return nil
}
