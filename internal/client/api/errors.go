package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/raisineat/internal/netx"
)

// User-facing messages.
const (
	MsgTimeout            = "Request timeout. Please check your connection."
	MsgInvalidCredentials = "Invalid email or password."
	MsgServerError        = "Server error. Please try again later."
	MsgUnknown            = "An unexpected error occurred."
)

// Kind classifies an API failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindInvalidCredentials
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

var (
	ErrTimeout            = errors.New("api: request timeout")
	ErrInvalidCredentials = errors.New("api: invalid credentials")
	ErrServer             = errors.New("api: server error")
	ErrUnknownTransport   = errors.New("api: unknown transport error")
)

// Error is returned by every API call. Status is zero when no HTTP response
// was received; Code is the backend's optional error code.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Code    string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrInvalidCredentials:
		return e.Kind == KindInvalidCredentials
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnknownTransport:
		return e.Kind == KindUnknown
	}
	return false
}

// Message returns the user-facing message of err if it is an *Error, or
// MsgUnknown otherwise.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgUnknown
}

// TransportError maps a failure that produced no HTTP response.
func TransportError(err error) *Error {
	if netx.IsTimeout(err) {
		return &Error{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	}
	return &Error{Kind: KindUnknown, Message: MsgUnknown, Err: err}
}

// StatusError maps a non-2xx response. 5xx is always KindServer with
// MsgServerError as fallback; anything else gets kind and fallback. The
// server's message wins over the fallback.
func StatusError(resp *netx.Response, kind Kind, fallback string) *Error {
	if resp.StatusCode >= http.StatusInternalServerError {
		kind, fallback = KindServer, MsgServerError
	}
	body := resp.ErrorBody()
	msg := body.Message
	if msg == "" {
		msg = fallback
	}
	return &Error{Kind: kind, Message: msg, Status: resp.StatusCode, Code: body.Code}
}

// IsTransient reports whether a retry may succeed: timeouts and 5xx.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServer)
}
