// Package validation provides field-level validation error collection.
// Errors are keyed by dot-joined field path and carry opaque message keys
// that the consuming layer resolves to user-facing text.
package validation

import (
	"sort"
	"strings"
)

// FieldErrors maps a field path (e.g. "detail.owner_first_name") to a
// message key (e.g. "required"). A nil or empty map means valid.
type FieldErrors map[string]string

// New creates an empty FieldErrors collection.
func New() FieldErrors {
	return make(FieldErrors)
}

// Add records a message key for a field path. Existing entries are not
// overwritten; the first failure for a path wins.
func (f FieldErrors) Add(path, key string) {
	if _, ok := f[path]; ok {
		return
	}
	f[path] = key
}

// Merge copies all entries from other under an optional path prefix.
func (f FieldErrors) Merge(prefix string, other FieldErrors) {
	for path, key := range other {
		if prefix != "" {
			path = prefix + "." + path
		}
		f.Add(path, key)
	}
}

// Empty reports whether no field failures were recorded.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Error implements the error interface with a deterministic rendering.
func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "validation passed"
	}

	paths := make([]string, 0, len(f))
	for path := range f {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, len(paths))
	for i, path := range paths {
		parts[i] = path + ": " + f[path]
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Message keys shared across domain validators.
const (
	KeyRequired = "required"
	KeyInvalid  = "invalid"
	KeyMismatch = "type_mismatch"
)
