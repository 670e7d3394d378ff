package keychain

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/raisineat/internal/client/repositories/keyring"
	"github.com/dmitrijs2005/raisineat/internal/cryptox"
)

// Entry is a username/secret pair held under a service name.
type Entry struct {
	Username string
	Secret   []byte
}

// Vault is the platform-style secure storage the Store is built on.
// GetInternetCredentials returns (nil, nil) when no entry exists.
type Vault interface {
	SetInternetCredentials(ctx context.Context, service, username string, secret []byte) error
	GetInternetCredentials(ctx context.Context, service string) (*Entry, error)
	ResetInternetCredentials(ctx context.Context, service string) error
}

// EncryptedVault keeps entries in a keyring repository, sealed with the
// service name as associated data.
type EncryptedVault struct {
	repo   keyring.Repository
	sealer *cryptox.Sealer
}

func NewEncryptedVault(repo keyring.Repository, sealer *cryptox.Sealer) *EncryptedVault {
	return &EncryptedVault{repo: repo, sealer: sealer}
}

func (v *EncryptedVault) SetInternetCredentials(ctx context.Context, service, username string, secret []byte) error {
	ct, nonce, err := v.sealer.Seal(secret, []byte(service))
	if err != nil {
		return err
	}
	return v.repo.Set(ctx, &keyring.Item{Service: service, Username: username, Secret: ct, Nonce: nonce})
}

func (v *EncryptedVault) GetInternetCredentials(ctx context.Context, service string) (*Entry, error) {
	item, err := v.repo.Get(ctx, service)
	if err != nil || item == nil {
		return nil, err
	}
	secret, err := v.sealer.Open(item.Secret, item.Nonce, []byte(service))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", service, err)
	}
	return &Entry{Username: item.Username, Secret: secret}, nil
}

func (v *EncryptedVault) ResetInternetCredentials(ctx context.Context, service string) error {
	return v.repo.Delete(ctx, service)
}
