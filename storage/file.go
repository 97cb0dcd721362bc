// Package storage provides a document-file implementation of the Storage
// interface, keeping all preferences in one YAML or TOML file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/CreativeUnicorns/scopeprefs"
)

// ErrUnsupportedFormat is returned when the file extension does not map to a
// supported document format.
var ErrUnsupportedFormat = errors.New("unsupported preferences file format (supported: yaml, toml)")

// fileEntry is the on-disk record for one preference.
type fileEntry struct {
	Kind      string    `yaml:"kind" toml:"kind"`
	Value     string    `yaml:"value" toml:"value"`
	UpdatedAt time.Time `yaml:"updated_at" toml:"updated_at"`
}

// fileDocument is the whole-file document, keyed by identifier.
type fileDocument struct {
	Preferences map[string]fileEntry `yaml:"preferences" toml:"preferences"`
}

// FileStorage implements the Storage interface with a single preferences
// file. The format is auto-detected from the extension (.yaml/.yml or .toml).
// Every mutation rewrites the file through a temp-file rename, so readers
// never observe a partial document.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	format string
	enc    scopeprefs.Encryptor
}

// NewFileStorage initializes a FileStorage backed by the file at path.
// A missing file is treated as an empty document until the first write.
func NewFileStorage(path string, opts ...Option) (*FileStorage, error) {
	format := inferFormat(path)
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	o := applyOptions(opts)
	s := &FileStorage{path: path, format: format, enc: o.encryptor}

	// Validate an existing document up front so malformed files fail fast.
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *FileStorage) Get(_ context.Context, identifier string) (*scopeprefs.StoredValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	entry, ok := doc.Preferences[identifier]
	if !ok {
		return nil, scopeprefs.ErrNotFound
	}
	return s.toStoredValue(identifier, entry)
}

// Set stores or updates a value.
func (s *FileStorage) Set(_ context.Context, value *scopeprefs.StoredValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	text, err := sealValue(s.enc, value.Value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	doc.Preferences[value.Identifier] = fileEntry{
		Kind:      value.Kind,
		Value:     text,
		UpdatedAt: value.UpdatedAt,
	}
	return s.write(doc)
}

// Delete removes a stored value by identifier.
// It returns scopeprefs.ErrNotFound if no value is stored.
func (s *FileStorage) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := doc.Preferences[identifier]; !ok {
		return scopeprefs.ErrNotFound
	}
	delete(doc.Preferences, identifier)
	return s.write(doc)
}

// GetAll retrieves every stored value, keyed by identifier.
func (s *FileStorage) GetAll(_ context.Context) (map[string]*scopeprefs.StoredValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	values := make(map[string]*scopeprefs.StoredValue, len(doc.Preferences))
	for identifier, entry := range doc.Preferences {
		sv, err := s.toStoredValue(identifier, entry)
		if err != nil {
			return nil, err
		}
		values[identifier] = sv
	}
	return values, nil
}

// Close is a no-op; the file is reopened on every operation.
func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) toStoredValue(identifier string, entry fileEntry) (*scopeprefs.StoredValue, error) {
	text, err := openValue(s.enc, entry.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt value: %w", err)
	}
	return &scopeprefs.StoredValue{
		Identifier: identifier,
		Kind:       entry.Kind,
		Value:      text,
		UpdatedAt:  entry.UpdatedAt,
	}, nil
}

func (s *FileStorage) read() (*fileDocument, error) {
	doc := &fileDocument{Preferences: make(map[string]fileEntry)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("read preferences file %s: %w", s.path, err)
	}

	switch s.format {
	case "yaml":
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", s.path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", s.path, err)
		}
	}

	if doc.Preferences == nil {
		doc.Preferences = make(map[string]fileEntry)
	}
	return doc, nil
}

func (s *FileStorage) write(doc *fileDocument) error {
	var data []byte
	var err error

	switch s.format {
	case "yaml":
		data, err = yaml.Marshal(doc)
	case "toml":
		data, err = toml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode preferences file %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".scopeprefs-*")
	if err != nil {
		return fmt.Errorf("write preferences file %s: %w", s.path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write preferences file %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write preferences file %s: %w", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write preferences file %s: %w", s.path, err)
	}
	return nil
}

// inferFormat maps a file extension to a document format, or "" if
// unsupported.
func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
