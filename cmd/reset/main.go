// Command reset replaces the talk catalog with the embedded dataset and
// exits. It reads the same DATABASE_URL as the server.
//
//	DATABASE_URL=data/talks.db go run ./cmd/reset
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sakif/talk-catalog/internal/config"
	"github.com/sakif/talk-catalog/internal/server"
	"github.com/sakif/talk-catalog/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if err := server.ResetCatalog(ctx, service.NewTalkService(store, logger)); err != nil {
		logger.Error("reset failed", slog.String("error", err.Error()))
		store.Close()
		os.Exit(1)
	}
}
