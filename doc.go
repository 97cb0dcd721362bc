// Package scopeprefs provides a typed, single-owner preference value system
// for instrument and analysis applications.
//
// Each Preference is a named, user-facing setting holding exactly one payload
// of a closed set of kinds (boolean, string, real, color) together with its
// metadata (identifier, label, description, visibility, physical unit). Cells
// are produced by a fluent Builder, read and mutated through kind-checked
// accessors, and transferred between owners with explicit move semantics.
// A Registry syncs registered cells with pluggable storage backends
// (PostgreSQL, SQLite, YAML/TOML files) and optional caching (Redis,
// in-memory).
package scopeprefs
