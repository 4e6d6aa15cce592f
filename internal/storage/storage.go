// Package storage keeps uploaded files in an S3 compatible bucket
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Aidin1998/apiexercises/internal/config"
	"go.uber.org/zap"
)

// ObjectStore stores objects under keys and hands out temporary read URLs
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
	Check(ctx context.Context) error
}

// New builds the store selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ObjectStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3(ctx, cfg, logger)
	case "memory":
		return NewMemory(cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
