package keyring

import (
	"context"

	"github.com/dmitrijs2005/raisineat/internal/dbx"
)

// Item is one stored keychain row.
type Item struct {
	Service  string
	Username string
	Secret   []byte
	Nonce    []byte
}

// Repository stores keychain rows by service name.
//
// Get returns (nil, nil) when no row exists for service.
type Repository interface {
	Get(ctx context.Context, service string) (*Item, error)
	Set(ctx context.Context, item *Item) error
	Delete(ctx context.Context, service string) error
}

// NewRepository returns the SQLite-backed Repository.
func NewRepository(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}
