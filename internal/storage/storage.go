// Package storage abstracts where product images live. Two drivers:
//
//   - "local" — files under static/uploads, served by the storefront
//     itself (the default for development)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Uploads are keyed by the caller; URL derives the publicly
// retrievable address for a stored key.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/hotiphone/storefront/internal/config"
)

type Disk interface {
	// Put writes the content under key, creating parents as needed.
	Put(ctx context.Context, key string, r io.Reader) error

	// URL returns the public URL for a stored key.
	URL(key string) string

	// Delete removes a stored object. Nil if it did not exist.
	Delete(ctx context.Context, key string) error
}

// New picks the driver named in the configuration.
func New(cfg *config.Config) (Disk, error) {
	switch cfg.StorageDriver {
	case "s3":
		return newS3Disk(cfg)
	case "local":
		return newLocalDisk(cfg), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}
