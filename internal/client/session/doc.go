// Package session owns the in-memory authentication state of the client.
//
// A Manager holds a single Snapshot and changes it only through Login,
// Restore, Logout and ClearError. The first three are serialized by one
// mutation lock, so a second call waits for the one in flight instead of
// interleaving with it. Readers take copies with Snapshot and can wait for
// changes with Subscribe.
//
// Only Login reports failures, both as a returned error and in
// Snapshot.Error. Restore and Logout degrade silently: an unreadable store
// means "not signed in", and a failed clear still signs the user out.
package session
