package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// FilePersister saves downloaded content into a single directory.
type FilePersister struct {
	dir string // Directory where files are saved
}

const defaultDir = "/tmp/images"

// New creates a new FilePersister instance with an optional custom directory.
//
// Parameters:
//   - dir: Optional variadic parameter for the directory path. Uses defaultDir if not provided.
//
// Returns:
//   - A pointer to a new FilePersister instance.
func New(dir ...string) *FilePersister {
	d := defaultDir
	if len(dir) > 0 && dir[0] != "" {
		d = dir[0]
	}
	return &FilePersister{dir: d}
}

// Dir returns the directory files are written to.
func (fp *FilePersister) Dir() string {
	return fp.dir
}

// EnsureDir creates the directory and any missing parents. It is a no-op if
// the directory already exists.
func (fp *FilePersister) EnsureDir() error {
	if err := os.MkdirAll(fp.dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", fp.dir, err)
	}
	return nil
}

// Save writes data to <dir>/<name>, truncating any existing file.
//
// Returns:
//   - The path that was written.
//   - An error if the file could not be created, written or closed.
func (fp *FilePersister) Save(name string, data []byte) (path string, err error) {
	path = filepath.Join(fp.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return path, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.Write(data); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL returns the text after the last "/" of rawURL, verbatim.
// Query strings and fragments are kept; nothing is sanitized.
func FilenameFromURL(rawURL string) string {
	return rawURL[strings.LastIndex(rawURL, "/")+1:]
}
