// Package scopeprefs defines the interfaces for storage, caching, and
// value-at-rest encryption used by the preference registry.
package scopeprefs

import (
	"context"
	"time"
)

// StoredValue is the serialized form of a preference as it crosses the
// persistence boundary. Value is exactly the preference's ToString rendering;
// Kind is the textual name of its Kind.
type StoredValue struct {
	Identifier string    `json:"identifier"`
	Kind       string    `json:"kind"`
	Value      string    `json:"value"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Storage defines the methods required of a persistence backend.
type Storage interface {
	Get(ctx context.Context, identifier string) (*StoredValue, error)
	Set(ctx context.Context, value *StoredValue) error
	Delete(ctx context.Context, identifier string) error
	GetAll(ctx context.Context) (map[string]*StoredValue, error)
	Close() error
}

// Cache defines the methods required of a caching backend.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Encryptor transforms serialized preference values at rest. Storage backends
// apply it to the value text before writing and after reading.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encrypted string) (string, error)
}
