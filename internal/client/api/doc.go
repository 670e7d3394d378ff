// Package api talks to the RaisinEat backend.
//
// # Overview
//
// Authenticator is the login contract used by the session package.
// HTTPClient implements it with a single JSON POST to <base>/login. The
// backend answers with {message, userId} only, so the client builds the
// session itself: the user is {id: userId, email: <caller email>} and the
// token comes from a TokenSource (by default SyntheticTokens, which yields
// "token-<userId>-<epochMillis>").
//
// # Error Handling
//
// Every failure is an *Error carrying a user-facing Message. Callers classify
// it with errors.Is against ErrTimeout, ErrInvalidCredentials, ErrServer and
// ErrUnknownTransport.
package api
