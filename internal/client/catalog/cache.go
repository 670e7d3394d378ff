package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/raisineat/internal/dbx"
)

// Cache keeps the last fetched payload with its fetch time.
// Load returns ok=false when nothing is cached.
type Cache interface {
	Load(ctx context.Context) (payload models.CuisinesPayload, fetchedAt time.Time, ok bool, err error)
	Store(ctx context.Context, payload models.CuisinesPayload, fetchedAt time.Time) error
}

// SQLiteCache stores the payload in the metadata table.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db}
}

func (c *SQLiteCache) Load(ctx context.Context) (models.CuisinesPayload, time.Time, bool, error) {
	repo := metadata.NewSQLiteRepository(c.db)

	raw, err := repo.Get(ctx, metadata.KeyCatalogPayload)
	if err != nil || raw == nil {
		return nil, time.Time{}, false, err
	}
	rawAt, err := repo.Get(ctx, metadata.KeyCatalogFetchedAt)
	if err != nil || rawAt == nil {
		return nil, time.Time{}, false, err
	}

	at, err := time.Parse(time.RFC3339Nano, string(rawAt))
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("parse catalog fetch time: %w", err)
	}
	var payload models.CuisinesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decode cached catalog: %w", err)
	}
	return payload, at, true, nil
}

// Store writes the payload and its fetch time in one transaction.
func (c *SQLiteCache) Store(ctx context.Context, payload models.CuisinesPayload, fetchedAt time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyCatalogPayload, raw); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyCatalogFetchedAt, []byte(fetchedAt.UTC().Format(time.RFC3339Nano)))
	})
}
