package encryption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewManagerWithKey(t *testing.T) {
	m, err := NewManagerWithKey(testKey)
	require.NoError(t, err)
	assert.NotNil(t, m)

	_, err = NewManagerWithKey([]byte("too short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	// Longer keys are accepted and truncated to the AES-256 length.
	m, err = NewManagerWithKey(append(testKey, []byte("extra bytes")...))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewManagerFromEnvironment(t *testing.T) {
	t.Setenv(EnvKeyName, string(testKey))
	m, err := NewManager()
	require.NoError(t, err)
	assert.NotNil(t, m)

	t.Setenv(EnvKeyName, "")
	_, err = NewManager()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	m, err := NewManagerWithKey(testKey)
	require.NoError(t, err)

	for _, plaintext := range []string{"2.5", "rgb(255,255,0)", "a longer preference value", ""} {
		encrypted, err := m.Encrypt(plaintext)
		require.NoError(t, err)
		if plaintext != "" {
			assert.NotEqual(t, plaintext, encrypted)
		}

		decrypted, err := m.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	m, err := NewManagerWithKey(testKey)
	require.NoError(t, err)

	a, err := m.Encrypt("same plaintext")
	require.NoError(t, err)
	b, err := m.Encrypt("same plaintext")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "GCM nonce should make ciphertexts differ")
}

func TestDecryptRejectsGarbage(t *testing.T) {
	m, err := NewManagerWithKey(testKey)
	require.NoError(t, err)

	_, err = m.Decrypt("not base64 !!!")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = m.Decrypt("c2hvcnQ=") // valid base64, shorter than a nonce
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	// Tampered ciphertext fails authentication.
	encrypted, err := m.Encrypt("value")
	require.NoError(t, err)
	tampered := []byte(encrypted)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}
	_, err = m.Decrypt(string(tampered))
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	t.Setenv(EnvKeyName, string(testKey))
	assert.NoError(t, ValidateKey())

	t.Setenv(EnvKeyName, "short")
	assert.ErrorIs(t, ValidateKey(), ErrInvalidKeyLength)

	t.Setenv(EnvKeyName, "")
	assert.ErrorIs(t, ValidateKey(), ErrKeyNotFound)
}
