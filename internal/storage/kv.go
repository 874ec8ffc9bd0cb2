// Package storage is the persistence boundary: a small key-value port with
// memory, file and SQLite adapters, and the Store that keeps the root record
// of readings, daily cards and preferences on top of it.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key or record does not exist
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded is returned when a write would exceed the storage quota
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidImport is returned when an imported blob fails structural validation
	ErrInvalidImport = errors.New("invalid import data")
)

// KV is the storage port. Values are opaque JSON documents.
type KV interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Clear deletes every key.
	Clear(ctx context.Context) error
}
