package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/talk-catalog/internal/config"
	"github.com/sakif/talk-catalog/internal/repository"
	"github.com/sakif/talk-catalog/internal/repository/postgres"
	"github.com/sakif/talk-catalog/internal/repository/sqlite"
	"github.com/sakif/talk-catalog/internal/seed"
	"github.com/sakif/talk-catalog/internal/service"
)

// OpenStore connects to the store named by cfg.DatabaseURL and applies
// pending migrations. For a SQLite file path the parent directory is
// created first.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.IsPostgres() {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	if path := cfg.DatabaseURL; !isInMemory(path) {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("server: creating database directory %s: %w", dir, err)
		}
	}
	db, err := sqlite.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func isInMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:") || strings.Contains(path, "mode=memory")
}

// ResetCatalog loads the embedded dataset and replaces the catalog with it.
func ResetCatalog(ctx context.Context, talks *service.TalkService) error {
	dataset, err := seed.Talks()
	if err != nil {
		return fmt.Errorf("server: loading seed dataset: %w", err)
	}
	return talks.Reset(ctx, dataset)
}
