// Command ingest imports a directory of Markdown files into the encyclopedia.
// Each file name.md becomes the entry "name", replacing any existing body.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"auction_backend/internal/app/config"
	"auction_backend/internal/app/di"
	"auction_backend/internal/feature/encyclopedia/adapters/markdown"
	"auction_backend/internal/feature/encyclopedia/usecase"
	"auction_backend/internal/platform/logger"
	infraredis "auction_backend/internal/platform/redis"
	"auction_backend/internal/platform/storage/filesystem"
	"auction_backend/internal/shared/ratelimiter"
)

func main() {
	src := flag.String("src", "", "directory holding the *.md files to import")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall time limit")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logger.New(cfg.Env))

	if err := run(cfg, *src, *timeout); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, src string, timeout time.Duration) error {
	if src == "" {
		return errors.New("-src is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	source, err := filesystem.New(src)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}
	defer source.Close()

	rdb := infraredis.ConnectOptional(ctx, cfg.Redis, "Redis unavailable; the entry cache is not purged")
	if rdb != nil {
		defer rdb.Close()
	}

	target, closeTarget, err := di.NewEntryStorage(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeTarget()

	limiter := ratelimiter.NewRateLimiter(cfg.IngestRatePerMinute, time.Minute)
	wiki := usecase.NewEncyclopediaUsecase(target, markdown.NewRenderer())
	uc := usecase.NewImportUsecase(source, wiki, limiter)

	report, err := uc.ImportAll(ctx)
	if err != nil {
		return fmt.Errorf("import aborted after %d entries: %w", report.Imported, err)
	}

	if err := target.Purge(ctx); err != nil {
		slog.Warn("failed to purge entry cache", "error", err)
	}

	slog.Info("ingest ok", "imported", report.Imported, "skipped", report.Skipped, "failed", report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d files failed to import", report.Failed)
	}
	return nil
}
