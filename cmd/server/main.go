package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction_backend/internal/app/config"
	"auction_backend/internal/app/di"
	"auction_backend/internal/app/router"
	"auction_backend/internal/platform/db"
	"auction_backend/internal/platform/http/handler"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/platform/logger"
	infraredis "auction_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	// db
	conn, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(conn, di.Models()...); err != nil {
			return err
		}
	}

	// Redis
	rdb := infraredis.ConnectOptional(ctx, cfg.Redis, "Redis unavailable; sessions in the database, entry cache off")
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// entry storage
	entries, closeEntries, err := di.NewEntryStorage(ctx, cfg, rdb)
	if err != nil {
		return err
	}
	defer closeEntries()

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET is not set; using an insecure development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)

	handlers := di.NewHandlers(di.Deps{
		DB:           conn,
		Sessions:     di.NewSessionRepository(rdb, conn),
		Entries:      entries,
		Tokens:       tokens,
		RefreshTTL:   cfg.RefreshTokenTTL,
		SecureCookie: cfg.IsProduction(),
	})

	checks := map[string]handler.Pinger{"db": handler.PingFunc(sqlDB.PingContext)}
	if rdb != nil {
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.NewRouter(log, tokens, checks, handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
