// Package keychain is the secure credential store of the client.
//
// Store exposes typed operations for the three fixed entries the session
// needs: the auth token, the stored user data and the raw login credentials
// used by auto-login. Entries live in a Vault; the default EncryptedVault seals
// every secret with AES-GCM before it reaches the SQLite keychain table.
//
// Error contract
//
//   - Save* operations return *StorageError wrapping the cause.
//   - Get* operations never fail: a missing entry and an unreadable one both
//     come back as the zero value. Internally the two are kept apart as
//     ErrNotFound and ErrUnavailable.
//   - ClearAll attempts all three deletions concurrently and returns a
//     *StorageError if any of them failed. After a failed ClearAll the store
//     content is unknown; callers must not assume which entries survived.
package keychain
