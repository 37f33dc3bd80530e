package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/filex"
)

// UploadsRoute is where the HTTP server exposes a LocalStore's directory.
const UploadsRoute = "/uploads"

// LocalStore keeps blobs under a directory served statically by the HTTP server.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Root is the absolute directory blobs are written to.
func (s *LocalStore) Root() string { return s.root }

// split maps key onto a directory below root and a file name.
func (s *LocalStore) split(key string) (string, string, error) {
	clean := path.Clean(key)
	if clean != key || path.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", "", fmt.Errorf("%w: %q", filex.ErrUnsafeName, key)
	}
	dir, name := path.Split(clean)
	return filepath.Join(s.root, filepath.FromSlash(dir)), name, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	dir, name, err := s.split(key)
	if err != nil {
		return err
	}
	if _, err := filex.EnsureDir(dir); err != nil {
		return err
	}
	n, err := filex.WriteFile(dir, name, r)
	if err != nil {
		return err
	}
	if n != size {
		_ = filex.RemoveFile(dir, name)
		return fmt.Errorf("put %s: wrote %d of %d bytes", key, n, size)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.baseURL + UploadsRoute + "/" + escapeKey(key)
}

// DownloadURL is the public URL; local files need no signing.
func (s *LocalStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.URL(key), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	dir, name, err := s.split(key)
	if err != nil {
		return err
	}
	return filex.RemoveFile(dir, name)
}
