// Package validation checks login form input before it reaches the API.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
)

const (
	EmailMinLength    = 5
	EmailMaxLength    = 254
	PasswordMinLength = 6
	PasswordMaxLength = 128
)

const (
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgPasswordRequired = "Password is required."
	MsgPasswordTooShort = "Password must be at least 6 characters."
	MsgPasswordTooLong  = "Password must be at most 128 characters."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors holds one message per invalid field; empty means valid.
type FieldErrors struct {
	Email    string
	Password string
}

func (e *FieldErrors) Error() string {
	var parts []string
	if e.Email != "" {
		parts = append(parts, e.Email)
	}
	if e.Password != "" {
		parts = append(parts, e.Password)
	}
	return strings.Join(parts, " ")
}

// Email returns the message for an invalid address, or "".
func Email(s string) string {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return MsgEmailRequired
	case n < EmailMinLength, n > EmailMaxLength, !emailPattern.MatchString(s):
		return MsgEmailInvalid
	}
	return ""
}

// Password returns the message for an invalid password, or "".
func Password(s string) string {
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return MsgPasswordRequired
	case n < PasswordMinLength:
		return MsgPasswordTooShort
	case n > PasswordMaxLength:
		return MsgPasswordTooLong
	}
	return ""
}

// Credentials validates both fields and returns *FieldErrors when either
// is invalid.
func Credentials(c models.Credentials) error {
	fe := &FieldErrors{Email: Email(c.Email), Password: Password(c.Password)}
	if fe.Email == "" && fe.Password == "" {
		return nil
	}
	return fe
}
