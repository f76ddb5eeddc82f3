// Package storage is the Credential Store: a durable string key/value
// abstraction the auth service persists the session token and the user
// profile through.
//
// Every call is atomic for its own key; there are no cross-key transactions.
// Failures of the underlying medium are returned wrapping
// common.ErrStorageFailure and are never retried here.
package storage

import "context"

// Store is a durable key/value store.
//
// Get returns ok=false and a nil error for a key that is not present.
// Remove of an absent key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Keys derives the two persisted keys from a namespace.
type Keys struct {
	Namespace string
}

// AuthToken is the key holding the opaque session token.
func (k Keys) AuthToken() string {
	return k.Namespace + ":auth-token"
}

// UserData is the key holding the serialized user profile.
func (k Keys) UserData() string {
	return k.Namespace + ":user-data"
}
