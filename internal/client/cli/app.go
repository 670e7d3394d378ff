package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/autologin"
	"github.com/dmitrijs2005/raisineat/internal/client/catalog"
	"github.com/dmitrijs2005/raisineat/internal/client/config"
	"github.com/dmitrijs2005/raisineat/internal/client/gate"
	"github.com/dmitrijs2005/raisineat/internal/client/keychain"
	"github.com/dmitrijs2005/raisineat/internal/client/session"
	"github.com/dmitrijs2005/raisineat/internal/client/storage"
	"github.com/dmitrijs2005/raisineat/internal/common"
	"github.com/dmitrijs2005/raisineat/internal/filex"
	"github.com/dmitrijs2005/raisineat/internal/logging"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	store     *keychain.Store
	session   *session.Manager
	autologin *autologin.Coordinator
	gate      *gate.Gate
	catalog   *catalog.Service
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and keychain under cfg.DataDir and wires
// the client components.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsurePrivateDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	c.DataDir = dir

	db, err := storage.InitDatabase(ctx, c.DBPath())
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	secret, err := vaultSecret(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	defer common.WipeByteArray(secret)

	store, err := keychain.Open(ctx, db, secret, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, db, store, logger, os.Stdin, os.Stdout), nil
}

// vaultSecret is the configured passphrase or the generated device key.
func vaultSecret(c *config.Config) ([]byte, error) {
	if c.KeychainPassphrase != "" {
		return []byte(c.KeychainPassphrase), nil
	}
	return keychain.DeviceSecret(c.DeviceKeyPath())
}

func newApp(c *config.Config, db *sql.DB, store *keychain.Store, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	apiClient := api.NewHTTPClient(c.BaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger),
	)
	mgr := session.NewManager(apiClient, store, logger)
	auto := autologin.New(store, mgr, logger)

	fetcher := catalog.NewHTTPFetcher(c.BaseURL, nil, c.RequestTimeout, logger)
	cat := catalog.NewService(fetcher,
		catalog.WithCache(catalog.NewSQLiteCache(db)),
		catalog.WithTTL(c.CatalogCacheTTL),
		catalog.WithRetry(c.RetryAttempts, 0),
		catalog.WithLogger(logger),
	)

	return &App{
		config:    c,
		db:        db,
		store:     store,
		session:   mgr,
		autologin: auto,
		gate:      gate.New(mgr, auto, c.Policy(), logger),
		catalog:   cat,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// Run mounts the gate and serves the REPL until the user exits or ctx is
// done. The database is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(a.out, "Welcome to %s %s (type 'help' for commands)\n", common.AppName, common.AppVersion)

	a.autologin.CheckAvailability(ctx)
	screen := a.gate.Mount(ctx)
	a.logger.Debug(ctx, "gate mounted", "screen", screen, "policy", a.config.Policy())

	go a.gate.Watch(ctx, func(s gate.Screen) {
		a.logger.Debug(ctx, "screen changed", "screen", s)
	})

	if screen == gate.ScreenDashboard {
		fmt.Fprintf(a.out, "Signed in as %s.\n", a.session.User().Email)
	} else if a.autologin.Available() {
		fmt.Fprintln(a.out, "Saved credentials found; type 'autologin' to use them.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) screen() gate.Screen {
	return a.gate.Screen()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil && a.session.IsAuthenticated() {
		return fmt.Sprintf("raisineat (%s)> ", u.Email)
	}
	return "raisineat> "
}
