package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/logging"
	"github.com/dmitrijs2005/raisineat/internal/netx"
)

const cuisinesPath = "/cuisines"

// Fetcher loads the raw catalog payload.
type Fetcher interface {
	FetchCuisines(ctx context.Context) (models.CuisinesPayload, error)
}

// HTTPFetcher fetches the payload over HTTP. Errors are *api.Error.
type HTTPFetcher struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logging.Logger
}

func NewHTTPFetcher(baseURL string, client *http.Client, timeout time.Duration, logger logging.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		timeout: timeout,
		logger:  logger.With("component", "catalog"),
	}
}

func (f *HTTPFetcher) FetchCuisines(ctx context.Context) (models.CuisinesPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := netx.DoJSON(ctx, f.http, http.MethodGet, f.baseURL+cuisinesPath, nil, api.RequestHeaders(ctx))
	if err != nil {
		return nil, api.TransportError(err)
	}
	if !resp.OK() {
		f.logger.Debug(ctx, "cuisines request rejected", "status", resp.StatusCode)
		return nil, api.StatusError(resp, api.KindServer, api.MsgServerError)
	}

	var payload models.CuisinesPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, &api.Error{Kind: api.KindUnknown, Message: api.MsgUnknown, Status: resp.StatusCode, Err: err}
	}
	return payload, nil
}
