package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/common"
	"github.com/dmitrijs2005/raisineat/internal/logging"
	"github.com/dmitrijs2005/raisineat/internal/netx"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second
	loginPath      = "/login"
)

// Authenticator performs the login call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
}

// HTTPClient is the JSON-over-HTTP Authenticator.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	tokens  TokenSource
	logger  logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds each request. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.tokens == nil {
		c.tokens = NewSyntheticTokens(nil)
	}
	c.logger = c.logger.With("component", "api")
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *HTTPClient) Timeout() time.Duration { return c.timeout }

// RequestHeaders returns the headers sent with every backend request. The
// request id is the operation id of ctx when it has one.
func RequestHeaders(ctx context.Context) http.Header {
	h := http.Header{}
	h.Set("User-Agent", common.UserAgent)
	id, ok := logging.OpID(ctx)
	if !ok {
		id = uuid.NewString()
	}
	h.Set(common.RequestIDHeaderName, id)
	return h
}

type loginResponse struct {
	Message string        `json:"message"`
	UserID  models.UserID `json:"userId"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	creds := models.Credentials{Email: email, Password: password}
	resp, err := netx.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+loginPath, creds, RequestHeaders(ctx))
	if err != nil {
		apiErr := TransportError(err)
		c.logger.Warn(ctx, "login request failed", "kind", apiErr.Kind, "error", err)
		return nil, apiErr
	}
	if !resp.OK() {
		// 4xx is a rejected login; 5xx is split off as KindServer so an
		// outage is not reported as a wrong password.
		apiErr := StatusError(resp, KindInvalidCredentials, MsgInvalidCredentials)
		c.logger.Info(ctx, "login rejected", "status", resp.StatusCode, "kind", apiErr.Kind)
		return nil, apiErr
	}

	var body loginResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &Error{Kind: KindUnknown, Message: MsgUnknown, Status: resp.StatusCode, Err: err}
	}
	if body.UserID.IsZero() {
		return nil, &Error{Kind: KindUnknown, Message: MsgUnknown, Status: resp.StatusCode}
	}

	user := &models.User{ID: body.UserID, Email: email}
	c.logger.Debug(ctx, "login accepted", "user_id", user.ID)
	return &models.AuthResult{User: user, Token: c.tokens.Token(user)}, nil
}
