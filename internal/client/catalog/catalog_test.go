package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/client/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "chinese": {
    "open":  [{"id":"c1","restaurantName":"Dragon","shortDesc":"dim sum","currency":"EUR","deliveryCost":2.5,"rating":4.5,"minOrder":10,"deliveryTime":"30 min","imageUrl":"x"}],
    "close": [{"id":"c2","restaurantName":"Panda","shortDesc":"noodles","currency":"EUR","deliveryCost":1,"rating":4,"minOrder":8,"deliveryTime":"40 min","imageUrl":"y"}]
  },
  "italian": {
    "open":  [{"id":"i1","restaurantName":"Roma","shortDesc":"pizza","currency":"EUR","deliveryCost":0,"rating":4.8,"minOrder":15,"deliveryTime":"25 min","imageUrl":"z","speciality":"margherita"}],
    "close": []
  },
  "greek_street": {"open": [], "close": []}
}`

type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	errs    []error
	payload models.CuisinesPayload
}

func (f *fakeFetcher) FetchCuisines(context.Context) (models.CuisinesPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.payload, nil
}

func payloadFixture(t *testing.T) models.CuisinesPayload {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer ts.Close()
	p, err := NewHTTPFetcher(ts.URL, ts.Client(), 0, nil).FetchCuisines(context.Background())
	require.NoError(t, err)
	return p
}

func fastRetry() Option { return WithRetry(3, time.Millisecond) }

func TestHTTPFetcher_Success(t *testing.T) {
	var gotPath, gotMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer ts.Close()

	p, err := NewHTTPFetcher(ts.URL+"/", ts.Client(), time.Second, nil).FetchCuisines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/cuisines", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	require.Len(t, p, 3)
	assert.Equal(t, "Dragon", p["chinese"].Open[0].RestaurantName)
	assert.Equal(t, "margherita", p["italian"].Open[0].Speciality)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		msg      string
	}{
		{"500 default message", 500, ``, api.ErrServer, api.MsgServerError},
		{"502 server message", 502, `{"message":"upstream down"}`, api.ErrServer, "upstream down"},
		{"404 default message", 404, ``, api.ErrServer, api.MsgServerError},
		{"bad json", 200, `[1,2]`, api.ErrUnknownTransport, api.MsgUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewHTTPFetcher(ts.URL, ts.Client(), 0, nil).FetchCuisines(context.Background())
			require.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestNormalizeCuisines(t *testing.T) {
	got := NormalizeCuisines(payloadFixture(t))

	want := []models.Cuisine{
		knownCuisines["chinese"],
		{ID: "greek_street", Name: "Greek Street", ImageURL: PlaceholderImage},
		knownCuisines["italian"],
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cuisines mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Thai", displayName("thai"))
	assert.Equal(t, "Middle Eastern", displayName("middle_eastern"))
	assert.Equal(t, "Tex Mex", displayName("tex-mex"))
}

func TestService_Restaurants_OpenFirstAndTagged(t *testing.T) {
	svc := NewService(&fakeFetcher{payload: payloadFixture(t)}, fastRetry())

	list, err := svc.Restaurants(context.Background(), "chinese", nil)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "c1", list[0].ID)
	assert.True(t, list[0].IsOpen)
	assert.Equal(t, "c2", list[1].ID)
	assert.False(t, list[1].IsOpen)
	for _, r := range list {
		assert.Equal(t, "chinese", r.CuisineID)
	}
}

func TestService_Restaurants_Pagination(t *testing.T) {
	svc := NewService(&fakeFetcher{payload: payloadFixture(t)}, fastRetry())
	ctx := context.Background()

	tests := []struct {
		name string
		page *models.Page
		want []string
	}{
		{"first page", &models.Page{Number: 1, Limit: 1}, []string{"c1"}},
		{"second page", &models.Page{Number: 2, Limit: 1}, []string{"c2"}},
		{"past the end", &models.Page{Number: 3, Limit: 1}, []string{}},
		{"page zero is first", &models.Page{Number: 0, Limit: 1}, []string{"c1"}},
		{"default limit", &models.Page{Number: 1}, []string{"c1", "c2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.Restaurants(ctx, "chinese", tt.page)
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_NotFound(t *testing.T) {
	svc := NewService(&fakeFetcher{payload: payloadFixture(t)}, fastRetry())

	_, err := svc.Restaurants(context.Background(), "thai", nil)
	assert.ErrorIs(t, err, ErrCuisineNotFound)

	_, err = svc.Restaurant(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestService_Restaurant(t *testing.T) {
	svc := NewService(&fakeFetcher{payload: payloadFixture(t)}, fastRetry())

	r, err := svc.Restaurant(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Panda", r.RestaurantName)
	assert.Equal(t, "chinese", r.CuisineID)
	assert.False(t, r.IsOpen)

	r, err = svc.Restaurant(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, "italian", r.CuisineID)
	assert.True(t, r.IsOpen)
}

func TestService_RetriesTransientFailures(t *testing.T) {
	f := &fakeFetcher{
		payload: payloadFixture(t),
		errs: []error{
			&api.Error{Kind: api.KindTimeout, Message: api.MsgTimeout},
			&api.Error{Kind: api.KindServer, Message: api.MsgServerError, Status: 503},
		},
	}
	svc := NewService(f, fastRetry())

	_, err := svc.Cuisines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, f.calls)
}

func TestService_GivesUpAfterAttempts(t *testing.T) {
	timeout := &api.Error{Kind: api.KindTimeout, Message: api.MsgTimeout}
	f := &fakeFetcher{errs: []error{timeout, timeout, timeout, timeout}}
	svc := NewService(f, fastRetry())

	_, err := svc.Cuisines(context.Background())
	require.ErrorIs(t, err, api.ErrTimeout)
	assert.Equal(t, 3, f.calls)
}

func TestService_DoesNotRetryPermanentFailures(t *testing.T) {
	f := &fakeFetcher{errs: []error{errors.New("bad payload")}}
	svc := NewService(f, fastRetry())

	_, err := svc.Cuisines(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, f.calls)
}

func TestService_RetryBackoffDoesNotWaitOnClock(t *testing.T) {
	timeout := &api.Error{Kind: api.KindTimeout, Message: api.MsgTimeout}
	f := &fakeFetcher{payload: payloadFixture(t), errs: []error{timeout, timeout}}
	// the fake clock is never advanced
	svc := NewService(f, WithClock(clockwork.NewFakeClock()), fastRetry())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Cuisines(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Equal(t, 3, f.calls)
	case <-time.After(2 * time.Second):
		t.Fatal("retry backoff blocked on the injected clock")
	}
}

func newSQLiteCache(t *testing.T) *SQLiteCache {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteCache(db)
}

func TestSQLiteCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	_, _, ok, err := c.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	p := payloadFixture(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	require.NoError(t, c.Store(ctx, p, at))

	got, gotAt, ok, err := c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(gotAt))
	assert.Equal(t, p, got)
}

func TestService_CacheTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	f := &fakeFetcher{payload: payloadFixture(t)}
	svc := NewService(f, WithCache(newSQLiteCache(t)), WithClock(clock), WithTTL(time.Minute), fastRetry())

	_, err := svc.Cuisines(ctx)
	require.NoError(t, err)
	_, err = svc.Restaurants(ctx, "chinese", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls, "second call is served from cache")

	clock.Advance(2 * time.Minute)
	_, err = svc.Cuisines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls, "expired cache refetches")
}

func TestService_ServesStaleCacheOnFailure(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	f := &fakeFetcher{payload: payloadFixture(t)}
	svc := NewService(f, WithCache(newSQLiteCache(t)), WithClock(clock), WithTTL(time.Minute), fastRetry())

	_, err := svc.Cuisines(ctx)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	srv := &api.Error{Kind: api.KindServer, Message: api.MsgServerError, Status: 500}
	f.errs = []error{srv, srv, srv}

	list, err := svc.Cuisines(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 4, f.calls)
}
