// Package storage provides persistence backends for scopeprefs preference
// values. Every backend traffics in the serialized StoredValue form; the
// textual payload is produced and interpreted by the scopeprefs package.
package storage

import (
	"context"

	"github.com/CreativeUnicorns/scopeprefs"
)

// Storage mirrors scopeprefs.Storage for implementations in this package.
type Storage interface {
	Get(ctx context.Context, identifier string) (*scopeprefs.StoredValue, error)
	Set(ctx context.Context, value *scopeprefs.StoredValue) error
	Delete(ctx context.Context, identifier string) error
	GetAll(ctx context.Context) (map[string]*scopeprefs.StoredValue, error)
	Close() error
}

// Option configures a storage backend at construction time.
type Option func(*options)

type options struct {
	encryptor scopeprefs.Encryptor
}

// WithEncryptor makes the backend encrypt value text before writing and
// decrypt it after reading. Identifiers and kinds stay in the clear.
func WithEncryptor(e scopeprefs.Encryptor) Option {
	return func(o *options) {
		o.encryptor = e
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sealValue encrypts the value text when an encryptor is configured.
func sealValue(e scopeprefs.Encryptor, value string) (string, error) {
	if e == nil {
		return value, nil
	}
	return e.Encrypt(value)
}

// openValue decrypts the value text when an encryptor is configured.
func openValue(e scopeprefs.Encryptor, value string) (string, error) {
	if e == nil {
		return value, nil
	}
	return e.Decrypt(value)
}
