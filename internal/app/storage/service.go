/*
Package storage stores uploaded avatar files and hands back the opaque URL the
game carries around. Two backends exist: local disk (the default, served back
under /uploads) and any S3-compatible object store.
*/
package storage

import (
	"context"
	"fmt"
	"io"
)

// Backend names accepted in configuration.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds the settings for whichever backend is selected.
type Config struct {
	Backend string

	// Local backend settings.
	LocalDir string

	// S3 backend settings.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// BlobStore is the file-storage collaborator: it stores one uploaded blob
// under the given key and returns the URL clients use to reference it.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// New is the factory function for BlobStore, selecting the backend from config.
func New(cfg Config) (BlobStore, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return newLocalStore(cfg.LocalDir)
	case BackendS3:
		return newS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
