package sqlite

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/sakif/talk-catalog/internal/repository/migrations"
)

func (db *DB) migrateAgain(t *testing.T) error {
	t.Helper()
	return migrations.Up(context.Background(), db.conn, goose.DialectSQLite3)
}
