package storage

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/CreativeUnicorns/scopeprefs"
)

// Compile-time interface compliance checks.
var (
	_ scopeprefs.Storage = (*MemoryStorage)(nil)
	_ scopeprefs.Storage = (*SQLiteStorage)(nil)
	_ scopeprefs.Storage = (*PostgresStorage)(nil)
	_ scopeprefs.Storage = (*FileStorage)(nil)
)

// stubEncryptor reversibly scrambles values, standing in for the AES manager
// in tests.
type stubEncryptor struct{}

func newStubEncryptor() *stubEncryptor { return &stubEncryptor{} }

func (stubEncryptor) Encrypt(plaintext string) (string, error) {
	return "enc:" + base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

func (stubEncryptor) Decrypt(encrypted string) (string, error) {
	rest, ok := strings.CutPrefix(encrypted, "enc:")
	if !ok {
		return "", fmt.Errorf("stub encryptor: missing prefix in %q", encrypted)
	}
	data, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
