// Package common contains constants and small byte helpers shared by the
// RaisinEat client packages.
package common

const (
	// AppName is used as the namespace for keychain entries and in the
	// User-Agent header.
	AppName = "RaisinEat"

	// AppVersion is reported in the User-Agent header.
	AppVersion = "1.0.0"

	// RequestIDHeaderName carries the operation id on outbound HTTP requests.
	RequestIDHeaderName = "X-Request-ID"
)

// UserAgent is sent with every API request.
const UserAgent = AppName + "/" + AppVersion
