// Package tempstore holds uploads on disk for the duration of one relay.
package tempstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,8}$`)

// Store creates uniquely named files under one directory.
type Store struct {
	dir string
}

// NewStore ensures dir exists.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// File is a handle to one stored upload. Remove must be called exactly once the
// upload is no longer needed; calling it again is harmless.
type File struct {
	path         string
	originalName string
}

// Save copies src into <uuid><ext> under the store's directory. The original name is only
// used for its extension and is kept for the upstream request.
func (s *Store) Save(src io.Reader, originalName string) (*File, error) {
	ext := filepath.Ext(originalName)
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	p := filepath.Join(s.dir, uuid.NewString()+ext)

	dst, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	f := &File{path: p, originalName: filepath.Base(originalName)}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = f.Remove()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = f.Remove()
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) OriginalName() string {
	return f.originalName
}

func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
