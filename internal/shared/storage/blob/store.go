package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/andreslomelig/NovaFolio/internal/shared/util"
)

// URLPrefix is the public prefix under which stored files are served.
const URLPrefix = "/files/"

// Store persists uploaded files on a local content root and maps public
// locators of the form /files/{basename} to absolute paths and back.
type Store struct {
	root string
}

// New creates a store rooted at dir. A relative dir is resolved against the
// process working directory.
func New(dir string) *Store {
	if !filepath.IsAbs(dir) {
		if cwd, err := os.Getwd(); err == nil {
			dir = filepath.Join(cwd, dir)
		}
	}
	return &Store{root: dir}
}

// Root returns the absolute content root directory.
func (s *Store) Root() string {
	return s.root
}

// EnsureRoot creates the content root (including parents) if absent. Safe to
// call repeatedly and concurrently.
func (s *Store) EnsureRoot() (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("ensure storage root: %w", err)
	}
	return s.root, nil
}

// Save streams r to a new file named {uuid}_{sanitizedName} under the root
// and returns the public locator. The random prefix guarantees two uploads
// never collide even with identical filenames.
func (s *Store) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	safeName, err := util.SanitizeFileName(originalName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}

	if _, err := s.EnsureRoot(); err != nil {
		return "", err
	}

	baseName := uuid.NewString() + "_" + safeName
	fullPath := filepath.Join(s.root, baseName)

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write body: %w", err)
	}

	return URLPrefix + baseName, nil
}

// PathFromURL resolves a public locator back to an absolute path. Only the
// basename of the locator is trusted, so a crafted locator cannot escape the
// content root.
func (s *Store) PathFromURL(locator string) string {
	return filepath.Join(s.root, path.Base(locator))
}

// Remove deletes the file behind a locator. A missing file is not an error.
func (s *Store) Remove(locator string) error {
	err := os.Remove(s.PathFromURL(locator))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
