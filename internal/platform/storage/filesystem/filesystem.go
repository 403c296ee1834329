// Package filesystem stores entry files in a directory on local disk.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

// Store is an EntryStorage rooted at a directory. Paths are slash-separated
// and relative to the root; os.Root rejects any that would leave it.
type Store struct {
	root *os.Root

	// write copies a new file's body; replaced in tests to simulate a failing disk.
	write func(w io.Writer, data []byte) error
}

var _ usecase.EntryStorage = (*Store)(nil)

// New opens dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open storage dir: %w", err)
	}
	return &Store{root: root, write: writeAll}, nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Close releases the root directory handle.
func (s *Store) Close() error {
	return s.root.Close()
}

// ListFiles returns the names of regular files in dir. A missing dir is empty.
func (s *Store) ListFiles(_ context.Context, dir string) ([]string, error) {
	f, err := s.root.Open(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, xerrors.Newf("open %s: %w", dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, xerrors.Newf("read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) ReadFile(_ context.Context, p string) ([]byte, error) {
	data, err := s.root.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, usecase.ErrFileNotFound
	}
	if err != nil {
		return nil, xerrors.Newf("read %s: %w", p, err)
	}
	return data, nil
}

// CreateFile uses O_EXCL so that two concurrent creates cannot both succeed.
// A file whose body could not be written is removed again.
func (s *Store) CreateFile(_ context.Context, p string, data []byte) error {
	if err := s.root.MkdirAll(path.Dir(p), 0o755); err != nil {
		return xerrors.Newf("create dir for %s: %w", p, err)
	}

	f, err := s.root.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return usecase.ErrFileExists
	}
	if err != nil {
		return xerrors.Newf("create %s: %w", p, err)
	}
	if err := s.write(f, data); err != nil {
		f.Close()
		_ = s.root.Remove(p)
		return xerrors.Newf("write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		_ = s.root.Remove(p)
		return xerrors.Newf("close %s: %w", p, err)
	}
	return nil
}

// WriteFile replaces p atomically: readers see the old or the new body, never a partial one.
func (s *Store) WriteFile(_ context.Context, p string, data []byte) error {
	if err := s.root.MkdirAll(path.Dir(p), 0o755); err != nil {
		return xerrors.Newf("create dir for %s: %w", p, err)
	}

	tmp := path.Join(path.Dir(p), "."+uuid.NewString()+".tmp")
	if err := s.root.WriteFile(tmp, data, 0o644); err != nil {
		return xerrors.Newf("write %s: %w", tmp, err)
	}
	if err := s.root.Rename(tmp, p); err != nil {
		_ = s.root.Remove(tmp)
		return xerrors.Newf("replace %s: %w", p, err)
	}
	return nil
}
