// Command admin runs maintenance tasks against the database.
//
//	admin createuser -username alice [-email alice@example.com]
//	admin prune-sessions
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"auction_backend/internal/app/config"
	"auction_backend/internal/app/di"
	authadapters "auction_backend/internal/feature/auth/adapters"
	authusecase "auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/platform/db"
	"auction_backend/internal/platform/logger"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logger.New(cfg.Env))

	if err := run(cfg, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: admin createuser|prune-sessions [flags]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(conn, di.Models()...); err != nil {
		return err
	}

	sessions := authadapters.NewSessionGorm(conn)
	auth := authusecase.NewAuthUsecase(authadapters.NewUserGorm(conn), sessions, nil, cfg.RefreshTokenTTL)

	switch args[0] {
	case "createuser":
		return createUser(ctx, auth, args[1:], out, readPassword)
	case "prune-sessions":
		n, err := auth.PruneSessions(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %d expired sessions\n", n)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
