package storage

import (
	"context"
	"sync"
	"time"

	"github.com/CreativeUnicorns/scopeprefs"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// This is useful for testing or ephemeral setups where persistence across
// restarts is not required.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]*scopeprefs.StoredValue
}

// NewMemoryStorage creates a new instance of MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]*scopeprefs.StoredValue),
	}
}

// Get retrieves a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *MemoryStorage) Get(_ context.Context, identifier string) (*scopeprefs.StoredValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sv, ok := s.values[identifier]
	if !ok {
		return nil, scopeprefs.ErrNotFound
	}

	// Return a copy so callers cannot mutate the stored record through the pointer.
	svCopy := *sv
	return &svCopy, nil
}

// Set stores a value, updating UpdatedAt to the current time.
func (s *MemoryStorage) Set(_ context.Context, value *scopeprefs.StoredValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svCopy := *value
	svCopy.UpdatedAt = time.Now()
	s.values[value.Identifier] = &svCopy
	return nil
}

// Delete removes a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *MemoryStorage) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[identifier]; !ok {
		return scopeprefs.ErrNotFound
	}
	delete(s.values, identifier)
	return nil
}

// GetAll returns a copy of every stored value, keyed by identifier.
func (s *MemoryStorage) GetAll(_ context.Context) (map[string]*scopeprefs.StoredValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]*scopeprefs.StoredValue, len(s.values))
	for identifier, sv := range s.values {
		svCopy := *sv
		values[identifier] = &svCopy
	}
	return values, nil
}

// Close clears the store.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]*scopeprefs.StoredValue)
	return nil
}
