// Package blobstore writes encoded images to their final location and
// reports the path or URL under which they can be found again.
package blobstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/config"
)

// Store persists one named blob. Put overwrites an existing blob of the same
// name and returns where it was stored.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// New returns the store selected by cfg.ImageBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ImageBackend {
	case config.ImagesLocal:
		return NewLocalStore(cfg.UploadsDir()), nil
	case config.ImagesS3:
		s, err := NewS3Store(ctx, S3Options{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown image backend %q", cfg.ImageBackend)
}
