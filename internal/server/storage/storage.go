// Package storage keeps uploaded resumes in an object store or on local disk.
// One backend is active per process, chosen by config.Config.ResumeStorage.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/jobboard/internal/server/config"
)

// BlobStore stores immutable blobs under caller-chosen keys.
type BlobStore interface {
	// Put uploads size bytes from r under key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL is the stable public reference persisted with the application.
	URL(key string) string
	// DownloadURL is a short-lived URL for fetching the blob.
	DownloadURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New returns the backend selected by cfg.ResumeStorage.
func New(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	switch cfg.ResumeStorage {
	case config.StorageS3:
		return NewS3Store(ctx, cfg)
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadsDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown resume storage %q", cfg.ResumeStorage)
	}
}
