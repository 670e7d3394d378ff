// Package keyring persists sealed keychain entries in the local SQLite
// database. Each row mirrors an OS "internet credentials" record: a service
// name, a username and an encrypted secret with its nonce.
//
// The repository never sees plaintext secrets; sealing happens in the
// keychain package.
package keyring
