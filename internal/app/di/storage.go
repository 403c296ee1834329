package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auction_backend/internal/app/config"
	"auction_backend/internal/feature/encyclopedia/usecase"
	"auction_backend/internal/platform/cache"
	infrahttp "auction_backend/internal/platform/http"
	"auction_backend/internal/platform/storage/filesystem"
	"auction_backend/internal/platform/storage/s3"
)

const s3Timeout = 30 * time.Second

// NewEntryStorage builds the backend selected by ENTRY_STORAGE, wrapped in
// the Redis read cache. A nil rdb leaves the cache disabled. The returned
// close function releases the backend.
func NewEntryStorage(ctx context.Context, cfg config.Config, rdb *redis.Client) (*cache.CachingEntryStorage, func() error, error) {
	inner, closeFn, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewCachingEntryStorage(rdb, cfg.EntryCacheTTL, inner, "entries"), closeFn, nil
}

func newBackend(ctx context.Context, cfg config.Config) (usecase.EntryStorage, func() error, error) {
	switch cfg.EntryStorage {
	case config.StorageFS:
		store, err := filesystem.New(cfg.EntryDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StorageS3:
		if cfg.S3.Bucket == "" {
			return nil, nil, errors.New("S3_BUCKET is required when ENTRY_STORAGE=s3")
		}
		client, err := s3.NewClient(ctx, cfg.S3, infrahttp.NewHTTPClient(s3Timeout))
		if err != nil {
			return nil, nil, err
		}
		return s3.New(client, cfg.S3.Bucket, cfg.S3.Prefix), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported ENTRY_STORAGE %q", cfg.EntryStorage)
	}
}
