package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoRoot      = errors.New("no root directory configured")
	ErrIsDirectory = errors.New("path is a directory")
)

// Store is the file-system provider behind the file routes. Names are
// path segments relative to the store's root.
type Store interface {
	// Open returns a byte source for name together with its size
	Open(name []string) (io.ReadCloser, int64, error)
	// Create creates or truncates name
	Create(name []string) (io.WriteCloser, error)
}

// Dir is a Store rooted at a directory on the local file system. The
// zero value has no root and fails every call with ErrNoRoot.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Path joins name under the root as separate path components. The
// result is not cleaned: ".." and empty segments reach the file system
// as sent, and no traversal checks are made.
func (d *Dir) Path(name []string) (string, error) {
	if d.Root == "" {
		return "", ErrNoRoot
	}
	sep := string(filepath.Separator)
	return d.Root + sep + strings.Join(name, sep), nil
}

func (d *Dir) Open(name []string) (io.ReadCloser, int64, error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrIsDirectory
	}

	return f, info.Size(), nil
}

func (d *Dir) Create(name []string) (io.WriteCloser, error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}
