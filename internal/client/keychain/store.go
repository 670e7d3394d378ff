package keychain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Fixed entry names.
const (
	KeyAuthToken   = "raisin_eat_auth_token"
	KeyUserData    = "raisin_eat_user_data"
	KeyCredentials = "raisin_eat_credentials"
)

const (
	tokenUsername    = "token"
	userDataUsername = "user"
)

// Store is the typed credential store used by the session and auto-login.
type Store struct {
	vault  Vault
	logger logging.Logger
}

func NewStore(vault Vault, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{vault: vault, logger: logger.With("component", "keychain")}
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.save(ctx, "save token", KeyAuthToken, tokenUsername, []byte(token))
}

// GetToken returns the stored token or "" when it is missing or unreadable.
func (s *Store) GetToken(ctx context.Context) string {
	entry, err := s.lookup(ctx, KeyAuthToken)
	if err != nil {
		return ""
	}
	return string(entry.Secret)
}

// HasToken reports whether a token is stored.
func (s *Store) HasToken(ctx context.Context) bool {
	return s.GetToken(ctx) != ""
}

func (s *Store) SaveUserData(ctx context.Context, data *models.StoredUserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return &StorageError{Op: "save user data", Key: KeyUserData, Err: err}
	}
	return s.save(ctx, "save user data", KeyUserData, userDataUsername, raw)
}

// GetUserData returns the stored user data or nil when it is missing or
// unreadable.
func (s *Store) GetUserData(ctx context.Context) *models.StoredUserData {
	data, err := s.lookupUserData(ctx)
	if err != nil {
		return nil
	}
	return data
}

func (s *Store) SaveCredentials(ctx context.Context, creds models.Credentials) error {
	return s.save(ctx, "save credentials", KeyCredentials, creds.Email, []byte(creds.Password))
}

// GetCredentials returns the saved login credentials or nil.
func (s *Store) GetCredentials(ctx context.Context) *models.Credentials {
	creds, err := s.lookupCredentials(ctx)
	if err != nil {
		return nil
	}
	return creds
}

// ClearAll removes the token, user data and credentials entries. The three
// deletions run concurrently and are all attempted; the first failure is
// returned once every deletion has settled.
func (s *Store) ClearAll(ctx context.Context) error {
	var g errgroup.Group
	for _, key := range []string{KeyAuthToken, KeyUserData, KeyCredentials} {
		g.Go(func() error {
			if err := s.vault.ResetInternetCredentials(ctx, key); err != nil {
				s.logger.Warn(ctx, "keychain delete failed", "key", key, "error", err)
				return &StorageError{Op: "clear", Key: key, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Store) save(ctx context.Context, op, key, username string, secret []byte) error {
	if err := s.vault.SetInternetCredentials(ctx, key, username, secret); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}

// lookup reads key and classifies failures as ErrNotFound or ErrUnavailable.
func (s *Store) lookup(ctx context.Context, key string) (*Entry, error) {
	entry, err := s.vault.GetInternetCredentials(ctx, key)
	if err != nil {
		s.logger.Debug(ctx, "keychain read failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, key, err)
	}
	if entry == nil || len(entry.Secret) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return entry, nil
}

func (s *Store) lookupUserData(ctx context.Context) (*models.StoredUserData, error) {
	entry, err := s.lookup(ctx, KeyUserData)
	if err != nil {
		return nil, err
	}
	var data models.StoredUserData
	if err := json.Unmarshal(entry.Secret, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, KeyUserData, err)
	}
	if data.User == nil || data.Token == "" {
		return nil, fmt.Errorf("%w: %s: incomplete record", ErrUnavailable, KeyUserData)
	}
	return &data, nil
}

func (s *Store) lookupCredentials(ctx context.Context) (*models.Credentials, error) {
	entry, err := s.lookup(ctx, KeyCredentials)
	if err != nil {
		return nil, err
	}
	if entry.Username == "" {
		return nil, fmt.Errorf("%w: %s: empty username", ErrUnavailable, KeyCredentials)
	}
	return &models.Credentials{Email: entry.Username, Password: string(entry.Secret)}, nil
}
