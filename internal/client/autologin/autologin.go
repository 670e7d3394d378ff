// Package autologin replays a full login from saved raw credentials.
//
// Unlike session restore, which trusts a stored token, the coordinator
// always goes to the server. Credentials that fail once are purged so a
// permanently invalid password is never replayed again.
package autologin

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/logging"
)

// Store is the part of the credential store the coordinator needs.
type Store interface {
	GetCredentials(ctx context.Context) *models.Credentials
	SaveCredentials(ctx context.Context, creds models.Credentials) error
	ClearAll(ctx context.Context) error
}

// Session is the login entry point of the session state machine.
type Session interface {
	Login(ctx context.Context, email, password string) error
}

type Coordinator struct {
	store   Store
	session Session
	logger  logging.Logger

	mu        sync.Mutex
	available bool
	loading   bool
	err       string
}

func New(store Store, session Session, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{store: store, session: session, logger: logger.With("component", "autologin")}
}

// CheckAvailability records whether credentials are saved, without logging
// in. Unreadable credentials count as unavailable.
func (c *Coordinator) CheckAvailability(ctx context.Context) bool {
	ok := c.store.GetCredentials(ctx) != nil
	c.mu.Lock()
	c.available = ok
	c.mu.Unlock()
	return ok
}

// PerformAutoLogin logs in with the saved credentials. It returns false
// with a nil error when nothing is saved. A failed login purges every
// saved entry and returns the login error.
func (c *Coordinator) PerformAutoLogin(ctx context.Context) (bool, error) {
	ctx = logging.WithOpID(ctx)
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	creds := c.store.GetCredentials(ctx)
	if creds == nil {
		c.setAvailable(false)
		return false, nil
	}

	if err := c.session.Login(ctx, creds.Email, creds.Password); err != nil {
		c.logger.Warn(ctx, "auto login failed, purging saved credentials", "error", err)
		c.purge(ctx)
		c.mu.Lock()
		c.err = api.Message(err)
		c.mu.Unlock()
		return false, err
	}

	c.logger.Info(ctx, "auto login succeeded")
	return true, nil
}

// ClearSavedCredentials purges the store regardless of any login outcome.
func (c *Coordinator) ClearSavedCredentials(ctx context.Context) error {
	err := c.purge(ctx)
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()
	return err
}

// Remember saves creds for later auto-login.
func (c *Coordinator) Remember(ctx context.Context, creds models.Credentials) error {
	if err := c.store.SaveCredentials(ctx, creds); err != nil {
		c.logger.Warn(ctx, "save credentials failed", "error", err)
		return err
	}
	c.setAvailable(true)
	return nil
}

func (c *Coordinator) purge(ctx context.Context) error {
	err := c.store.ClearAll(ctx)
	if err != nil {
		c.logger.Warn(ctx, "purge saved credentials failed", "error", err)
	}
	c.setAvailable(false)
	return err
}

func (c *Coordinator) setAvailable(v bool) {
	c.mu.Lock()
	c.available = v
	c.mu.Unlock()
}

// Available reports the last known availability of saved credentials.
func (c *Coordinator) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

func (c *Coordinator) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Error returns the message of the last failed auto-login, if any.
func (c *Coordinator) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
