package keyring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/raisineat/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, service string) (*Item, error) {
	item := &Item{Service: service}
	err := r.db.QueryRowContext(ctx,
		`SELECT username, secret, nonce FROM keychain WHERE service = ?`, service,
	).Scan(&item.Username, &item.Secret, &item.Nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keychain[%s]: %w", service, err)
	}
	return item, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO keychain (service, username, secret, nonce) VALUES (?, ?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET
			username = excluded.username,
			secret   = excluded.secret,
			nonce    = excluded.nonce
	`, item.Service, item.Username, item.Secret, item.Nonce)
	if err != nil {
		return fmt.Errorf("failed to set keychain[%s]: %w", item.Service, err)
	}
	return nil
}

// Delete removes the row for service. Deleting an absent row is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, service string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM keychain WHERE service = ?`, service); err != nil {
		return fmt.Errorf("failed to delete keychain[%s]: %w", service, err)
	}
	return nil
}
