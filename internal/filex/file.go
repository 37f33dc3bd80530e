// Package filex holds the filesystem helpers behind local resume storage.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrUnsafeName is returned for names that would escape the target directory.
var ErrUnsafeName = errors.New("unsafe file name")

// EnsureDir creates dirName (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// WriteFile streams r into dir/name. The content is written to a temporary
// file first and renamed into place, so readers never observe a partial file.
// An existing file with the same name is an error.
func WriteFile(dir, name string, r io.Reader) (int64, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return 0, fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}

	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err == nil {
		return 0, fmt.Errorf("write %s: %w", target, os.ErrExist)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o640); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("rename %s: %w", target, err)
	}

	return n, nil
}

// RemoveFile deletes dir/name; a missing file is not an error.
func RemoveFile(dir, name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
