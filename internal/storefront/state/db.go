// Package state persists the storefront's small amount of local state in
// SQLite: the active cart id per browser session and a key/value metadata
// table used as a cache for values resolved from the commerce backend.
package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/labelshop/internal/dbx"
	"github.com/dmitrijs2005/labelshop/internal/storefront/state/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the state database at path and migrates it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return db, nil
}
