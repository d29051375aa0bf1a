// Package main is the entry point for the talk catalog server.
//
// main stays minimal:
// 1. Read configuration from the environment
// 2. Create the logger and open the store
// 3. Optionally reload the catalog (RESET_DB)
// 4. Start the server
//
// Everything else lives in internal/.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sakif/talk-catalog/internal/config"
	"github.com/sakif/talk-catalog/internal/server"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Log levels, least to most severe: Debug → Info → Warn → Error.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, store, logger)
	if err != nil {
		store.Close()
		return err
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB is set: replacing the talk catalog")
		if err := srv.ResetCatalog(ctx); err != nil {
			store.Close()
			return err
		}
	}

	// Start blocks until SIGINT/SIGTERM and closes the store on the way out.
	return srv.Start()
}
