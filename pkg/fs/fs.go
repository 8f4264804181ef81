package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// FileExists checks to see if a path exists and is a file
func FileExists(path string) bool {
	info, err := os.Stat(path)

	if err != nil && !os.IsNotExist(err) {
		return false
	}

	return info != nil && err == nil && !info.IsDir()
}

// PathExists checks to see if a path exists
func PathExists(path string) bool {
	info, err := os.Stat(path)

	if err != nil && !os.IsNotExist(err) {
		return false
	}

	return info != nil && err == nil
}

// Dir reads files from the real file system. Relative paths are resolved
// against Root and absolute paths are used as they are.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root
func NewDir(root string) *Dir {
	return &Dir{Root: filepath.Clean(root)}
}

// ReadFile returns the content of the file. Anything that isn't there as a
// regular file (missing, behind a non-directory, a directory) returns an
// error wrapping io/fs.ErrNotExist.
func (d *Dir) ReadFile(name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, filepath.FromSlash(name))
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, &iofs.PathError{Op: "read", Path: name, Err: iofs.ErrNotExist}
		}

		return nil, err
	}

	if info.IsDir() {
		return nil, &iofs.PathError{Op: "read", Path: name, Err: fmt.Errorf("is a directory: %w", iofs.ErrNotExist)}
	}

	return os.ReadFile(path)
}
