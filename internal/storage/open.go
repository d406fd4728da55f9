package storage

import (
	"context"
	"log/slog"

	"github.com/stratacloud/careers-backend/internal/config"
)

// Open returns the in-memory store alongside STORE_DRIVER=memory and S3
// otherwise.
func Open(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	if cfg.StoreDriver == "memory" {
		slog.Warn("using in-memory object store; uploads are lost on restart")
		return NewMemoryStore(cfg.S3Bucket), nil
	}
	s, err := NewS3StoreFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("object store configured", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
	return s, nil
}
