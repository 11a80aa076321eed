// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"aliascore/internal/errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a string-keyed store for serialized fixtures.
// Values are opaque strings, typically JSON documents.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection.
	Close() error
}
