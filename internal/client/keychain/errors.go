package keychain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the entry does not exist.
	ErrNotFound = errors.New("keychain entry not found")
	// ErrUnavailable reports that the entry could not be read or decoded.
	ErrUnavailable = errors.New("keychain entry unavailable")
)

// StorageError is returned when a write or delete could not be confirmed.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("keychain: failed to %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
