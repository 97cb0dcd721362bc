// Package encryption provides AES-256-GCM encryption for preference values at
// rest. It includes key validation and environment variable management.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// KeyLength is the key length required for AES-256 (32 bytes).
	KeyLength = 32
	// EnvKeyName is the environment variable the key is read from.
	EnvKeyName = "SCOPEPREFS_ENCRYPTION_KEY"
)

var (
	// ErrInvalidKeyLength is returned when the key is shorter than KeyLength.
	ErrInvalidKeyLength = errors.New("encryption key must be at least 32 bytes for AES-256")
	// ErrKeyNotFound is returned when the key environment variable is not set.
	ErrKeyNotFound = errors.New("encryption key not found in environment variable " + EnvKeyName)
	// ErrEncryptionFailed is returned when an encryption operation fails.
	ErrEncryptionFailed = errors.New("encryption operation failed")
	// ErrDecryptionFailed is returned when a decryption operation fails.
	ErrDecryptionFailed = errors.New("decryption operation failed")
	// ErrInvalidCiphertext is returned when the ciphertext is malformed or too short.
	ErrInvalidCiphertext = errors.New("invalid ciphertext: too short or malformed")
)

// Manager handles AES-256-GCM encryption and decryption of serialized
// preference values. The key is validated during initialization for fast-fail
// scenarios; only the first KeyLength bytes of a longer key are used.
type Manager struct {
	key []byte
}

// NewManager creates an encryption manager with the key from the environment.
// Returns an error if the key is missing or too short.
func NewManager() (*Manager, error) {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return nil, ErrKeyNotFound
	}
	return NewManagerWithKey([]byte(keyStr))
}

// NewManagerWithKey creates an encryption manager with a provided key.
// This is primarily used for testing; in production, use NewManager with the
// environment variable.
func NewManagerWithKey(key []byte) (*Manager, error) {
	if len(key) < KeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(key), KeyLength)
	}
	return &Manager{key: key[:KeyLength]}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns base64-encoded
// ciphertext with the nonce prepended. An empty plaintext stays empty.
func (m *Manager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aesGCM, err := m.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", ErrEncryptionFailed, err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts base64-encoded ciphertext produced by Encrypt and returns
// the plaintext.
func (m *Manager) Decrypt(encodedCiphertext string) (string, error) {
	if encodedCiphertext == "" {
		return "", nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encodedCiphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}

	aesGCM, err := m.gcm()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decrypt: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// ValidateKey checks that the environment provides a usable key. Call it
// early in application startup for fast-fail validation.
func ValidateKey() error {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return ErrKeyNotFound
	}
	if len(keyStr) < KeyLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(keyStr), KeyLength)
	}
	return nil
}

func (m *Manager) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(m.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
