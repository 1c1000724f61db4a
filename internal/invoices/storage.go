package invoices

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFileMissing is returned when a recorded invoice file is no longer on disk.
var ErrFileMissing = errors.New("invoice file missing")

// LocalStore keeps rendered invoices in a directory on local disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir when it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("invoice dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invoice dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes data under name, going through a temp file so readers never see a partial PDF.
func (s *LocalStore) Save(name string, data *bytes.Buffer) error {
	target := s.path(name)
	tmp, err := os.CreateTemp(s.dir, ".invoice-*")
	if err != nil {
		return fmt.Errorf("create temp invoice: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := data.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write invoice: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close invoice: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("store invoice: %w", err)
	}
	return nil
}

// Open returns the stored file for reading.
func (s *LocalStore) Open(name string) (*os.File, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileMissing
		}
		return nil, err
	}
	return f, nil
}

// path confines name to the store directory.
func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
