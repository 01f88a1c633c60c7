package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Provider is the key-value contract the tracker persists through. Values
// are JSON strings; encoding and decoding happen at the caller.
//
// Get returns ErrNotFound for absent keys. Callers in the repository layer
// treat every Get error as "key absent" and fall back to defaults, so a
// backend failure degrades to a usable empty state rather than an outage.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value operations
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)

	// Utils
	GetConfigPath() string
}
