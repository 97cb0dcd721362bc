package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/scopeprefs"
)

func TestMemoryStorageCRUD(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	sv := &scopeprefs.StoredValue{
		Identifier: "channel.gain",
		Kind:       "real",
		Value:      "2.5",
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, s.Set(ctx, sv))

	got, err := s.Get(ctx, "channel.gain")
	require.NoError(t, err)
	assert.Equal(t, sv.Identifier, got.Identifier)
	assert.Equal(t, sv.Kind, got.Kind)
	assert.Equal(t, sv.Value, got.Value)

	// Mutating the returned record must not affect the stored one.
	got.Value = "changed"
	again, err := s.Get(ctx, "channel.gain")
	require.NoError(t, err)
	assert.Equal(t, "2.5", again.Value)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, scopeprefs.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "channel.gain"))
	_, err = s.Get(ctx, "channel.gain")
	assert.ErrorIs(t, err, scopeprefs.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "channel.gain"), scopeprefs.ErrNotFound)
}

func TestMemoryStorageGetAll(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, &scopeprefs.StoredValue{Identifier: "a", Kind: "boolean", Value: "true"}))
	require.NoError(t, s.Set(ctx, &scopeprefs.StoredValue{Identifier: "b", Kind: "string", Value: "x"}))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "true", all["a"].Value)
	assert.Equal(t, "x", all["b"].Value)
}

func TestMemoryStorageClose(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, &scopeprefs.StoredValue{Identifier: "a", Kind: "boolean", Value: "true"}))
	require.NoError(t, s.Close())

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, scopeprefs.ErrNotFound)
}
