// errors.go
package scopeprefs

import "errors"

var (
	ErrInvalidIdentifier   = errors.New("invalid preference identifier")
	ErrDuplicateIdentifier = errors.New("preference already registered")
	ErrNotRegistered       = errors.New("preference not registered")
	ErrNotFound            = errors.New("preference not found")
	ErrKindMismatch        = errors.New("stored kind does not match preference kind")
	ErrInvalidStoredValue  = errors.New("invalid stored preference value")
	ErrStorageUnavailable  = errors.New("storage backend unavailable")
	ErrCacheUnavailable    = errors.New("cache backend unavailable")
)
