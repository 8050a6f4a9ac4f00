// Package kv provides whole-value key/value storage. Values are opaque bytes
// that are read and replaced as a unit; there is no partial update.
package kv

import (
	"context"
	"errors"
)

// Store defines the storage backends favorites are persisted in.
type Store interface {
	// Get returns the value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value under key. A failed Set leaves the previous value
	// in place.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var ErrClosed = errors.New("kv: store is closed")

// Key namespaces name. An empty namespace leaves name unchanged.
func Key(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}
