// Package storage bootstraps the local SQLite database backing the keychain
// vault and the catalog cache.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/dmitrijs2005/raisineat/internal/client/migrations"
	"github.com/dmitrijs2005/raisineat/internal/dbx"
	"github.com/pressly/goose/v3"
)

// goose keeps its FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(log.New(io.Discard, "", 0))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := dbx.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
