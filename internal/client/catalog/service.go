package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/logging"
	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultTTL       = 5 * time.Minute
	DefaultAttempts  = 3
	DefaultBackoff   = 200 * time.Millisecond
	DefaultPageLimit = 20
)

var (
	ErrCuisineNotFound    = errors.New("cuisine not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

type Service struct {
	fetcher  Fetcher
	cache    Cache
	clock    clockwork.Clock
	ttl      time.Duration
	attempts int
	backoff  time.Duration
	logger   logging.Logger
}

type Option func(*Service)

// WithCache enables caching. Without it every call fetches.
func WithCache(c Cache) Option { return func(s *Service) { s.cache = c } }

// WithClock sets the clock used for cache TTL checks and fetch timestamps.
// Retry backoff waits on real timers regardless.
func WithClock(c clockwork.Clock) Option { return func(s *Service) { s.clock = c } }

// WithTTL sets how long a cached payload is served without refetching.
func WithTTL(d time.Duration) Option { return func(s *Service) { s.ttl = d } }

// WithRetry sets the total number of fetch attempts and the first backoff.
// Backoff sleeps in real time; tests should pass a backoff of a few
// milliseconds.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if backoff > 0 {
			s.backoff = backoff
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		clock:    clockwork.NewRealClock(),
		ttl:      DefaultTTL,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
		logger:   logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "catalog")
	return s
}

// Cuisines returns the normalized cuisine list.
func (s *Service) Cuisines(ctx context.Context) ([]models.Cuisine, error) {
	payload, err := s.payload(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeCuisines(payload), nil
}

// Restaurants returns the restaurants of cuisineID, open ones first. A
// non-nil page selects a 1-based slice.
func (s *Service) Restaurants(ctx context.Context, cuisineID string, page *models.Page) ([]models.Restaurant, error) {
	payload, err := s.payload(ctx)
	if err != nil {
		return nil, err
	}
	data, ok := payload[cuisineID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCuisineNotFound, cuisineID)
	}
	return paginate(restaurantsOf(cuisineID, data), page), nil
}

// Restaurant finds a restaurant by id across all cuisines.
func (s *Service) Restaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	payload, err := s.payload(ctx)
	if err != nil {
		return nil, err
	}
	for _, cid := range cuisineIDs(payload) {
		for _, r := range restaurantsOf(cid, payload[cid]) {
			if r.ID == id {
				return &r, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
}

func (s *Service) payload(ctx context.Context) (models.CuisinesPayload, error) {
	now := s.clock.Now()

	cached, fetchedAt, ok := s.load(ctx)
	if ok && now.Sub(fetchedAt) < s.ttl {
		return cached, nil
	}

	fresh, err := s.fetch(ctx)
	if err != nil {
		if ok {
			s.logger.Warn(ctx, "catalog fetch failed, serving stale cache", "fetched_at", fetchedAt, "error", err)
			return cached, nil
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, fresh, now); err != nil {
			s.logger.Warn(ctx, "catalog cache write failed", "error", err)
		}
	}
	return fresh, nil
}

func (s *Service) load(ctx context.Context) (models.CuisinesPayload, time.Time, bool) {
	if s.cache == nil {
		return nil, time.Time{}, false
	}
	payload, at, ok, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Debug(ctx, "catalog cache unreadable", "error", err)
		return nil, time.Time{}, false
	}
	return payload, at, ok
}

// fetch retries transient failures with exponential backoff.
func (s *Service) fetch(ctx context.Context) (models.CuisinesPayload, error) {
	b := retry.WithMaxRetries(uint64(s.attempts-1), retry.NewExponential(s.backoff))

	var payload models.CuisinesPayload
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		p, err := s.fetcher.FetchCuisines(ctx)
		if err != nil {
			if api.IsTransient(err) {
				s.logger.Debug(ctx, "catalog fetch failed, retrying", "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		payload = p
		return nil
	})
	return payload, err
}
