// Package branding stores the single logo image shown by the web UI.
package branding

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

const (
	LogoFileName = "logo.png"

	// MaxLogoSize bounds uploads so a request cannot fill the data volume.
	MaxLogoSize = 5 << 20
)

var (
	// ErrNoLogo is returned by Open before anything has been uploaded.
	ErrNoLogo = errors.New("no logo uploaded")

	ErrEmpty    = fmt.Errorf("%w: empty file", model.ErrInvalidInput)
	ErrTooLarge = fmt.Errorf("%w: logo exceeds %d bytes", model.ErrInvalidInput, MaxLogoSize)
)

// Store keeps the logo under dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns where the logo lives, whether or not it exists.
func (s *Store) Path() string {
	return filepath.Join(s.dir, LogoFileName)
}

// Save replaces the logo with the contents of r. The new file is written
// beside the old one and renamed into place, so readers never see a partial
// image.
func (s *Store) Save(r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".logo-*")
	if err != nil {
		return fmt.Errorf("create temp logo: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, MaxLogoSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write logo: %w", err)
	}
	switch {
	case n == 0:
		return ErrEmpty
	case n > MaxLogoSize:
		return ErrTooLarge
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("install logo: %w", err)
	}
	return nil
}

// Open returns the current logo and its file info. The caller closes it.
func (s *Store) Open() (*os.File, os.FileInfo, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, ErrNoLogo
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open logo: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat logo: %w", err)
	}
	return f, info, nil
}
