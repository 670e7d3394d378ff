package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID identifies a user. The backend sends numeric ids but the client
// treats them as opaque. An id decoded from JSON is re-encoded verbatim:
// numbers stay numbers with their original text, strings stay strings.
type UserID struct {
	value  string
	number bool
}

// NumericUserID is the id the backend sends as a JSON number.
func NumericUserID(n int64) UserID {
	return UserID{value: strconv.FormatInt(n, 10), number: true}
}

// StringUserID is an id carried as a JSON string.
func StringUserID(s string) UserID {
	return UserID{value: s}
}

func (id UserID) String() string { return id.value }
func (id UserID) IsZero() bool   { return id.value == "" }

func (id UserID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = UserID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringUserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a number or string: %w", err)
	}
	*id = UserID{value: n.String(), number: true}
	return nil
}

// User is the minimal identity record held by the session.
type User struct {
	ID    UserID `json:"id"`
	Email string `json:"email"`
}

// Credentials are the raw email/password pair typed by the user.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StoredUserData is the persisted form of an authenticated session.
type StoredUserData struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AuthResult is what a successful login yields.
type AuthResult struct {
	User  *User
	Token string
}
