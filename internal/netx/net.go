// Package netx holds small HTTP helpers shared by the API clients.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 4 << 20

// Response is an HTTP response whose body has already been read and closed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorBody is the error envelope the backend sends with non-2xx responses.
// Both fields are optional.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorBody decodes the body as an error envelope. Undecodable bodies yield
// an empty envelope.
func (r *Response) ErrorBody() ErrorBody {
	var eb ErrorBody
	_ = json.Unmarshal(r.Body, &eb)
	return eb
}

// DoJSON sends a request with body encoded as JSON (no body when nil) and
// returns the drained response. Non-2xx statuses are not errors here.
func DoJSON(ctx context.Context, c *http.Client, method, url string, body any, header http.Header) (*Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// IsTimeout reports whether err is a context deadline or a transport timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
