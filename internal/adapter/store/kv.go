// Package store holds the persistent-state repositories. State lives in a
// small key/value store (one JSON document per aggregate, last-write-wins per
// key); the typed repositories below own the serialization.
package store

import "context"

// KV is the storage contract the repositories are built on.
type KV interface {
	// Get returns the stored value, or types.ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value for a key.
	Set(ctx context.Context, key string, value []byte) error
	// SetAll overwrites several keys, atomically where the backend allows.
	SetAll(ctx context.Context, values map[string][]byte) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
