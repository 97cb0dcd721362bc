// registry.go
package scopeprefs

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"sync"
	"time"
)

// cacheTTL bounds how long mirrored values live in the cache.
const cacheTTL = 24 * time.Hour

// Registry owns a process's preference cells and syncs them with the
// configured storage and cache backends. The registry map is guarded by a
// mutex; the cells themselves keep the single-owner contract of Preference
// and must not be mutated concurrently.
type Registry struct {
	mu     sync.RWMutex
	config *Config
	prefs  map[string]*Preference
}

// NewRegistry creates a Registry configured by the given options.
func NewRegistry(opts ...Option) *Registry {
	cfg := &Config{
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Registry{
		config: cfg,
		prefs:  make(map[string]*Preference),
	}
}

// Register adds a finished preference cell to the registry. The registry
// becomes the cell's owner. Registering a moved-from cell is a programmer
// error and panics.
func (r *Registry) Register(pref *Preference) error {
	if pref == nil || pref.GetIdentifier() == "" {
		return ErrInvalidIdentifier
	}
	if pref.GetKind() == KindNone {
		panic(fmt.Sprintf("scopeprefs: register of moved-from preference %q", pref.GetIdentifier()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.prefs[pref.GetIdentifier()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentifier, pref.GetIdentifier())
	}

	r.prefs[pref.GetIdentifier()] = pref
	return nil
}

// Get returns the registered preference for the given identifier.
func (r *Registry) Get(identifier string) (*Preference, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pref, exists := r.prefs[identifier]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, identifier)
	}
	return pref, nil
}

// All returns every registered preference, sorted by identifier.
func (r *Registry) All() []*Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs := make([]*Preference, 0, len(r.prefs))
	for _, pref := range r.prefs {
		prefs = append(prefs, pref)
	}
	sort.Slice(prefs, func(i, j int) bool {
		return prefs[i].GetIdentifier() < prefs[j].GetIdentifier()
	})
	return prefs
}

// Visible returns every registered preference that should be shown to the
// user, sorted by identifier.
func (r *Registry) Visible() []*Preference {
	all := r.All()
	visible := make([]*Preference, 0, len(all))
	for _, pref := range all {
		if pref.GetIsVisible() {
			visible = append(visible, pref)
		}
	}
	return visible
}

// SetBool updates a boolean preference and writes it through to storage.
func (r *Registry) SetBool(ctx context.Context, identifier string, value bool) error {
	pref, err := r.Get(identifier)
	if err != nil {
		return err
	}
	pref.SetBool(value)
	return r.persist(ctx, pref)
}

// SetReal updates a real-number preference and writes it through to storage.
func (r *Registry) SetReal(ctx context.Context, identifier string, value float64) error {
	pref, err := r.Get(identifier)
	if err != nil {
		return err
	}
	pref.SetReal(value)
	return r.persist(ctx, pref)
}

// SetString updates a string preference and writes it through to storage.
func (r *Registry) SetString(ctx context.Context, identifier string, value string) error {
	pref, err := r.Get(identifier)
	if err != nil {
		return err
	}
	pref.SetString(value)
	return r.persist(ctx, pref)
}

// SetColor updates a color preference from a toolkit-native color and writes
// it through to storage.
func (r *Registry) SetColor(ctx context.Context, identifier string, value color.Color) error {
	pref, err := r.Get(identifier)
	if err != nil {
		return err
	}
	pref.SetColor(value)
	return r.persist(ctx, pref)
}

// Save persists every registered preference to the storage backend.
func (r *Registry) Save(ctx context.Context) error {
	if r.config.storage == nil {
		return ErrStorageUnavailable
	}

	for _, pref := range r.All() {
		if err := r.persist(ctx, pref); err != nil {
			return err
		}
	}
	return nil
}

// Load reads all stored values and applies them onto the matching registered
// cells. Stored values with no registered cell are skipped; a stored value
// whose kind disagrees with its cell is a data error and aborts the load.
func (r *Registry) Load(ctx context.Context) error {
	if r.config.storage == nil {
		return ErrStorageUnavailable
	}

	stored, err := r.config.storage.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	for identifier, sv := range stored {
		pref, err := r.Get(identifier)
		if err != nil {
			r.config.logger.Debug("Ignoring stored value for unknown preference", "identifier", identifier)
			continue
		}
		if err := applyStored(pref, sv); err != nil {
			return fmt.Errorf("load preference %q: %w", identifier, err)
		}
	}
	return nil
}

// Delete removes the persisted record for a preference. The in-memory cell
// keeps its current value.
func (r *Registry) Delete(ctx context.Context, identifier string) error {
	if _, err := r.Get(identifier); err != nil {
		return err
	}
	if r.config.storage == nil {
		return ErrStorageUnavailable
	}

	if err := r.config.storage.Delete(ctx, identifier); err != nil {
		return fmt.Errorf("delete preference %q: %w", identifier, err)
	}

	if r.config.cache != nil {
		r.deleteFromCache(ctx, identifier)
	}
	return nil
}

// Close releases the storage and cache backends.
func (r *Registry) Close() error {
	var firstErr error
	if r.config.storage != nil {
		if err := r.config.storage.Close(); err != nil {
			firstErr = err
		}
	}
	if r.config.cache != nil {
		if err := r.config.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// persist writes a cell's serialized form to storage and mirrors it into the
// cache. Without a storage backend it is a no-op so purely in-memory
// registries still accept Set calls.
func (r *Registry) persist(ctx context.Context, pref *Preference) error {
	if r.config.storage == nil {
		return nil
	}

	sv := storedValueOf(pref)
	if err := r.config.storage.Set(ctx, sv); err != nil {
		return fmt.Errorf("persist preference %q: %w", pref.GetIdentifier(), err)
	}

	if r.config.cache != nil {
		r.setToCache(ctx, sv)
	}
	return nil
}

// storedValueOf captures the serialized form of a cell.
func storedValueOf(pref *Preference) *StoredValue {
	return &StoredValue{
		Identifier: pref.GetIdentifier(),
		Kind:       pref.GetKind().String(),
		Value:      pref.ToString(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// applyStored parses a stored record and applies it onto a cell of matching
// kind. Deserialization of the textual payload lives here, in the registry
// collaborator; the cell itself only serializes via ToString.
func applyStored(pref *Preference, sv *StoredValue) error {
	if sv.Kind != pref.GetKind().String() {
		return fmt.Errorf("%w: stored %s, registered %s", ErrKindMismatch, sv.Kind, pref.GetKind())
	}

	switch pref.GetKind() {
	case KindBoolean:
		v, err := strconv.ParseBool(sv.Value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidStoredValue, sv.Value)
		}
		pref.SetBool(v)
	case KindString:
		pref.SetString(sv.Value)
	case KindReal:
		v, err := strconv.ParseFloat(sv.Value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a real number", ErrInvalidStoredValue, sv.Value)
		}
		pref.SetReal(v)
	case KindColor:
		var c Color
		if _, err := fmt.Sscanf(sv.Value, "rgb(%d,%d,%d)", &c.R, &c.G, &c.B); err != nil {
			return fmt.Errorf("%w: %q is not a color", ErrInvalidStoredValue, sv.Value)
		}
		pref.SetColorRaw(c)
	}
	return nil
}

func (r *Registry) setToCache(ctx context.Context, sv *StoredValue) {
	cacheKey := fmt.Sprintf("pref:%s", sv.Identifier)
	data, err := json.Marshal(sv)
	if err != nil {
		r.config.logger.Error("Failed to marshal preference for cache", "error", err)
		return
	}

	if err := r.config.cache.Set(ctx, cacheKey, data, cacheTTL); err != nil {
		r.config.logger.Error("Failed to cache preference", "error", err)
	}
}

func (r *Registry) deleteFromCache(ctx context.Context, identifier string) {
	cacheKey := fmt.Sprintf("pref:%s", identifier)
	if err := r.config.cache.Delete(ctx, cacheKey); err != nil {
		r.config.logger.Error("Failed to delete preference from cache", "error", err)
	}
}
