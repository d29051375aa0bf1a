// Package migrations embeds the schema migrations for every supported
// store and applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Up applies all pending migrations for the given dialect.
// Only goose.DialectSQLite3 and goose.DialectPostgres have migrations.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	var dir string
	switch dialect {
	case goose.DialectSQLite3:
		dir = "sqlite"
	case goose.DialectPostgres:
		dir = "postgres"
	default:
		return fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(files, dir)
	if err != nil {
		return fmt.Errorf("migrations: opening %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations: creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: applying %s: %w", dir, err)
	}
	return nil
}
