package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/config"
	"github.com/dmitrijs2005/raisineat/internal/client/gate"
	"github.com/dmitrijs2005/raisineat/internal/client/keychain"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cuisinesBody = `{
  "chinese": {
    "open":  [{"id":"c1","restaurantName":"Dragon","shortDesc":"dim sum","currency":"EUR","deliveryCost":2.5,"rating":4.5,"minOrder":10,"deliveryTime":"30 min","imageUrl":"x"}],
    "close": [{"id":"c2","restaurantName":"Panda","shortDesc":"noodles","currency":"EUR","deliveryCost":1,"rating":4,"minOrder":8,"deliveryTime":"40 min","imageUrl":"y","speciality":"hand-pulled noodles"}]
  },
  "italian": {"open": [], "close": []}
}`

type backend struct {
	*httptest.Server
	logins   atomic.Int32
	cuisines atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		b.logins.Add(1)
		var c models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Login successful","userId":7}`))
	})
	mux.HandleFunc("GET /cuisines", func(w http.ResponseWriter, r *http.Request) {
		b.cuisines.Add(1)
		_, _ = w.Write([]byte(cuisinesBody))
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

type testEnv struct {
	cfg   *config.Config
	db    *sql.DB
	store *keychain.Store
}

func newTestEnv(t *testing.T, baseURL string) *testEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = baseURL
	cfg.RequestTimeout = 2 * time.Second
	cfg.DataDir = t.TempDir()
	cfg.RetryAttempts = 1

	db, err := storage.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := keychain.Open(ctx, db, []byte("test-device-secret"), nil)
	require.NoError(t, err)

	return &testEnv{cfg: cfg, db: db, store: store}
}

func (e *testEnv) app(input string, out *bytes.Buffer) *App {
	return newApp(e.cfg, e.db, e.store, nil, strings.NewReader(input), out)
}

func pipedInput(t *testing.T) {
	t.Helper()
	stubTerminal(t, false, nil, nil)
}

func TestApp_LoginRememberAndBrowse(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()

	var out bytes.Buffer
	a := env.app("a@b.com\nsecret1\ny\n", &out)
	a.gate.Mount(ctx)
	assert.Equal(t, gate.ScreenAuth, a.screen())

	require.NoError(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Successfully logged in!")
	assert.Equal(t, gate.ScreenDashboard, a.screen())
	assert.Equal(t, "raisineat (a@b.com)> ", a.getStatus())

	creds := env.store.GetCredentials(ctx)
	require.NotNil(t, creds)
	assert.Equal(t, "a@b.com", creds.Email)
	assert.True(t, env.store.HasToken(ctx))

	out.Reset()
	require.NoError(t, a.Cuisines(ctx))
	assert.Contains(t, out.String(), "Chinese")
	assert.Contains(t, out.String(), "Italian")

	out.Reset()
	require.NoError(t, a.Restaurants(ctx, []string{"chinese"}))
	assert.Contains(t, out.String(), "[open] c1")
	assert.Contains(t, out.String(), "[closed] c2")

	out.Reset()
	require.NoError(t, a.Show(ctx, []string{"c2"}))
	assert.Contains(t, out.String(), "Panda (chinese, Closed)")
	assert.Contains(t, out.String(), "hand-pulled noodles")

	// served from the cache after the first fetch
	assert.Equal(t, int32(1), srv.cuisines.Load())

	out.Reset()
	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, out.String(), "a@b.com (user id 7)")

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, gate.ScreenAuth, a.screen())
	assert.False(t, env.store.HasToken(ctx))
	assert.Nil(t, env.store.GetCredentials(ctx))
}

func TestApp_LoginValidationFailsBeforeNetwork(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)

	var out bytes.Buffer
	a := env.app("not-an-email\n123\n", &out)
	a.gate.Mount(context.Background())

	assert.Error(t, a.Login(context.Background()))
	assert.Zero(t, srv.logins.Load())
	assert.Equal(t, gate.ScreenAuth, a.screen())
}

func TestApp_LoginInvalidCredentials(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()

	var out bytes.Buffer
	a := env.app("a@b.com\nwrong-pw\ny\n", &out)
	a.gate.Mount(ctx)

	assert.Error(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Invalid credentials")
	assert.Equal(t, gate.ScreenAuth, a.screen())
	assert.Nil(t, env.store.GetCredentials(ctx))
}

func TestApp_AutoLogin(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t, srv.URL)
		require.NoError(t, env.store.SaveCredentials(ctx, models.Credentials{Email: "a@b.com", Password: "secret1"}))

		var out bytes.Buffer
		a := env.app("", &out)
		a.gate.Mount(ctx)
		require.NoError(t, a.AutoLogin(ctx))
		assert.Contains(t, out.String(), "Successfully logged in!")
		assert.Equal(t, gate.ScreenDashboard, a.screen())
	})

	t.Run("rejected credentials are purged", func(t *testing.T) {
		env := newTestEnv(t, srv.URL)
		require.NoError(t, env.store.SaveCredentials(ctx, models.Credentials{Email: "a@b.com", Password: "stale"}))

		var out bytes.Buffer
		a := env.app("", &out)
		a.gate.Mount(ctx)
		assert.Error(t, a.AutoLogin(ctx))
		assert.Contains(t, out.String(), "Auto login failed")
		assert.Nil(t, env.store.GetCredentials(ctx))
		assert.Equal(t, gate.ScreenAuth, a.screen())
	})

	t.Run("nothing saved", func(t *testing.T) {
		env := newTestEnv(t, srv.URL)
		var out bytes.Buffer
		a := env.app("", &out)
		a.gate.Mount(ctx)
		require.NoError(t, a.AutoLogin(ctx))
		assert.Contains(t, out.String(), "No saved credentials.")
	})
}

func TestApp_Forget(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, env.store.SaveCredentials(ctx, models.Credentials{Email: "a@b.com", Password: "secret1"}))

	var out bytes.Buffer
	a := env.app("", &out)
	require.NoError(t, a.Forget(ctx))
	assert.Nil(t, env.store.GetCredentials(ctx))
	assert.Contains(t, out.String(), "Saved credentials cleared.")
}

func TestApp_CatalogErrors(t *testing.T) {
	pipedInput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()

	var out bytes.Buffer
	a := env.app("", &out)

	assert.Error(t, a.Restaurants(ctx, []string{"thai"}))
	assert.Error(t, a.Show(ctx, []string{"nope"}))
	assert.Error(t, a.Restaurants(ctx, []string{"chinese", "zero"}))
	assert.Contains(t, out.String(), "Page must be a positive number.")
}

func TestApp_RunRestoresSession(t *testing.T) {
	pipedInput(t)
	captureOutput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()

	var out bytes.Buffer
	first := env.app("a@b.com\nsecret1\nn\n", &out)
	first.gate.Mount(ctx)
	require.NoError(t, first.Login(ctx))

	out.Reset()
	second := env.app("whoami\nexit\n", &out)
	require.NoError(t, second.Run(ctx))

	s := out.String()
	assert.Contains(t, s, "Welcome to")
	assert.Contains(t, s, "Signed in as a@b.com.")
	assert.Contains(t, s, "a@b.com (user id 7)")
	assert.Equal(t, int32(1), srv.logins.Load())
}

func TestApp_RunMentionsSavedCredentials(t *testing.T) {
	pipedInput(t)
	captureOutput(t)
	srv := newBackend(t)
	env := newTestEnv(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, env.store.SaveCredentials(ctx, models.Credentials{Email: "a@b.com", Password: "secret1"}))

	var out bytes.Buffer
	a := env.app("exit\n", &out)
	require.NoError(t, a.Run(ctx))
	assert.Contains(t, out.String(), "Saved credentials found")
}
