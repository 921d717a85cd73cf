// Package storage keeps uploaded images in an S3 compatible bucket.
// Two backends exist: minio-go (default) and the AWS SDK v2 S3 client.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"reviewapi/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// PutOptions describes an object being written. Size is -1 when unknown.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectAttrs is what the backends report about a stored object.
type ObjectAttrs struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is implemented by every backend and by mocks.Storage in tests.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectAttrs, error)
	// Get fails with ErrObjectNotFound before returning a reader for a missing key.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectAttrs, error)
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

const (
	DriverMinIO = "minio"
	DriverS3    = "s3"
)

// New builds the backend selected by cfg.Driver and makes sure its bucket exists.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	switch cfg.Driver {
	case "", DriverMinIO:
		return NewMinIO(ctx, cfg)
	case DriverS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
