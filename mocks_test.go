package scopeprefs

import (
	"context"
	"sync"
	"time"
)

// mockStorage is an in-memory Storage that records calls and can be primed
// with errors.
type mockStorage struct {
	mu        sync.Mutex
	values    map[string]*StoredValue
	setErr    error
	getAllErr error
	closed    bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{values: make(map[string]*StoredValue)}
}

func (s *mockStorage) Get(_ context.Context, identifier string) (*StoredValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok := s.values[identifier]
	if !ok {
		return nil, ErrNotFound
	}
	svCopy := *sv
	return &svCopy, nil
}

func (s *mockStorage) Set(_ context.Context, value *StoredValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	svCopy := *value
	s.values[value.Identifier] = &svCopy
	return nil
}

func (s *mockStorage) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[identifier]; !ok {
		return ErrNotFound
	}
	delete(s.values, identifier)
	return nil
}

func (s *mockStorage) GetAll(_ context.Context) (map[string]*StoredValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	values := make(map[string]*StoredValue, len(s.values))
	for identifier, sv := range s.values {
		svCopy := *sv
		values[identifier] = &svCopy
	}
	return values, nil
}

func (s *mockStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// mockCache records set and deleted keys.
type mockCache struct {
	mu      sync.Mutex
	items   map[string]interface{}
	setErr  error
	deleted []string
	closed  bool
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string]interface{})}
}

func (c *mockCache) Get(_ context.Context, key string) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (c *mockCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.items[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *mockCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// mockLogger records logged messages per level.
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (l *mockLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[level] = append(l.messages[level], msg)
}

func (l *mockLogger) Debug(msg string, _ ...any) { l.log("debug", msg) }
func (l *mockLogger) Info(msg string, _ ...any)  { l.log("info", msg) }
func (l *mockLogger) Warn(msg string, _ ...any)  { l.log("warn", msg) }
func (l *mockLogger) Error(msg string, _ ...any) { l.log("error", msg) }
func (l *mockLogger) SetLevel(_ LogLevel)        {}

func (l *mockLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages[level])
}
