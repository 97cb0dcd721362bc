// Package scopeprefs provides an adapter for the encryption package.
package scopeprefs

import (
	"github.com/CreativeUnicorns/scopeprefs/encryption"
)

// EncryptionAdapter adapts the encryption.Manager to the Encryptor interface
// consumed by the storage backends.
type EncryptionAdapter struct {
	manager *encryption.Manager
}

// NewEncryptionAdapter creates an EncryptionAdapter with the encryption key
// taken from the environment. It validates the key during initialization for
// fast-fail scenarios.
func NewEncryptionAdapter() (*EncryptionAdapter, error) {
	manager, err := encryption.NewManager()
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

// NewEncryptionAdapterWithKey creates an EncryptionAdapter with a provided
// key. This is primarily used for testing; in production, use
// NewEncryptionAdapter with the environment variable.
func NewEncryptionAdapterWithKey(key []byte) (*EncryptionAdapter, error) {
	manager, err := encryption.NewManagerWithKey(key)
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

// Encrypt encrypts plaintext and returns the encrypted value as a string.
func (e *EncryptionAdapter) Encrypt(plaintext string) (string, error) {
	return e.manager.Encrypt(plaintext)
}

// Decrypt decrypts an encrypted value and returns the original plaintext.
func (e *EncryptionAdapter) Decrypt(encrypted string) (string, error) {
	return e.manager.Decrypt(encrypted)
}
