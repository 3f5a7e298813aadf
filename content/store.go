// ABOUTME: In-memory override store mapping content keys to operator-edited values.
// ABOUTME: Thread-safe; overrides are volatile and revert to defaults on reset or restart.

package content

import "sync"

// Store holds operator overrides for editable content slots. Values are
// opaque strings: plain text for text slots, a URL or data URI for image
// slots. The store never validates values; a broken image reference is
// handled at render time by the placeholder, not here.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewStore creates an empty override store.
func NewStore() *Store {
	return &Store{
		overrides: make(map[string]string),
	}
}

// Get returns the override for key if one exists, else the caller-supplied
// default. Every editable slot carries a compiled-in default, so a page
// never renders an empty field.
func (s *Store) Get(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.overrides[key]; ok {
		return v
	}
	return def
}

// Lookup returns the override for key and whether one exists.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.overrides[key]
	return v, ok
}

// Set inserts or replaces the override for key unconditionally.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides[key] = value
}

// ResetAll clears every override. The UI asks for confirmation before
// calling this; a declined confirmation never reaches the store.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides = make(map[string]string)
}

// Len returns the number of overridden keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.overrides)
}

// Snapshot returns a copy of the current overrides.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}
