package scopeprefs

// Config holds the internal configuration for a Registry instance. It is
// populated by applying functional Options when a Registry is created with
// NewRegistry and is not used directly.
type Config struct {
	// storage is the persistence backend, if any.
	storage Storage
	// cache is the optional caching backend.
	cache Cache
	// logger is the logging interface used by the Registry.
	logger Logger
}

// Option configures a Registry instance. Options are passed to NewRegistry.
type Option func(*Config)

// WithStorage sets the Storage backend used to persist preference values.
// Without it the Registry is purely in-memory.
func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.storage = s
	}
}

// WithCache sets the Cache backend. When present, the Registry mirrors every
// persisted value into the cache so other processes can observe it cheaply.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithLogger sets the Logger used by the Registry. Defaults to the slog-based
// logger from NewDefaultLogger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
