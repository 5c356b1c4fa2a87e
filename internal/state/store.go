// Package state implements the run-scoped key-value store that pipeline
// stages communicate through. One Store exists per pipeline run; concurrent
// runs each own their own instance, so there is no ambient shared state.
package state

import (
	"sort"

	"github.com/google/uuid"
)

// Key names a slot in the Store.
type Key string

// Store is a mutable, string-keyed container for one pipeline run.
// Keys are written at most once and never deleted mid-run.
//
// Store is not safe for concurrent use: a run executes its stages strictly
// in sequence and the Store is owned by that run.
type Store struct {
	runID  string
	values map[Key]string
}

// New creates an empty Store with a fresh run ID.
func New() *Store {
	return &Store{
		runID:  uuid.New().String(),
		values: make(map[Key]string),
	}
}

// RunID returns the unique identifier of the run that owns this store.
func (s *Store) RunID() string {
	return s.runID
}

// Set commits a value under key. Each key is single-writer: setting a key
// that already exists fails with *DuplicateWriteError.
func (s *Store) Set(key Key, value string) error {
	if _, ok := s.values[key]; ok {
		return &DuplicateWriteError{Key: key}
	}
	s.values[key] = value
	return nil
}

// Get returns the value for key, with ok reporting whether it exists.
func (s *Store) Get(key Key) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key has been written.
func (s *Store) Has(key Key) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns all written keys in sorted order. Insertion order carries no
// meaning, so a stable order keeps output and logs deterministic.
func (s *Store) Keys() []Key {
	out := make([]Key, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
