package keychain

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/raisineat/internal/client/repositories/keyring"
	"github.com/dmitrijs2005/raisineat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/raisineat/internal/common"
	"github.com/dmitrijs2005/raisineat/internal/cryptox"
	"github.com/dmitrijs2005/raisineat/internal/filex"
	"github.com/dmitrijs2005/raisineat/internal/logging"
)

const saltSize = 16

// DeviceSecret returns the hex-encoded secret stored at path, creating a
// random one readable only by the owner on first use. It stands in for the
// hardware-backed key of a platform keychain.
func DeviceSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		secret, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("decode device key %s: %w", path, err)
		}
		return secret, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read device key %s: %w", path, err)
	}

	s, err := common.MakeRandHexString(cryptox.KeySize)
	if err != nil {
		return nil, fmt.Errorf("generate device key: %w", err)
	}
	if _, err := filex.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		return nil, fmt.Errorf("write device key %s: %w", path, err)
	}
	return hex.DecodeString(s)
}

// VaultKey derives the vault key from secret and the salt kept in meta. The
// salt is generated and saved on first use.
func VaultKey(ctx context.Context, meta metadata.Repository, secret []byte) ([]byte, error) {
	salt, err := meta.Get(ctx, metadata.KeyVaultSalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := meta.Set(ctx, metadata.KeyVaultSalt, salt); err != nil {
			return nil, err
		}
	}
	return cryptox.DeriveKey(secret, salt), nil
}

// Open builds a Store over the keychain table of db, sealed with a key
// derived from secret.
func Open(ctx context.Context, db *sql.DB, secret []byte, logger logging.Logger) (*Store, error) {
	key, err := VaultKey(ctx, metadata.NewSQLiteRepository(db), secret)
	if err != nil {
		return nil, fmt.Errorf("vault key: %w", err)
	}
	defer common.WipeByteArray(key)

	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, err
	}
	vault := NewEncryptedVault(keyring.NewRepository(db), sealer)
	return NewStore(vault, logger), nil
}
