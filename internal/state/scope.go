package state

// Scope is the view of a Store handed to a single stage. It restricts reads
// to the stage's declared required keys and writes to its declared output
// keys, so a stage cannot quietly depend on state it never declared.
type Scope struct {
	stage    string
	store    *Store
	readable map[Key]bool
	writable map[Key]bool
}

// NewScope builds a Scope for the named stage over the given store.
func NewScope(stage string, store *Store, reads, writes []Key) *Scope {
	s := &Scope{
		stage:    stage,
		store:    store,
		readable: make(map[Key]bool, len(reads)),
		writable: make(map[Key]bool, len(writes)),
	}
	for _, k := range reads {
		s.readable[k] = true
	}
	for _, k := range writes {
		s.writable[k] = true
	}
	return s
}

// Get reads a declared required key. Reading a key the stage did not
// declare fails with *UndeclaredAccessError.
func (s *Scope) Get(key Key) (string, error) {
	if !s.readable[key] {
		return "", &UndeclaredAccessError{Stage: s.stage, Key: key, Op: "read"}
	}
	v, ok := s.store.Get(key)
	if !ok {
		// The orchestrator checks required keys before invoking the stage,
		// so this only fires when a Scope is used outside a pipeline run.
		return "", &UndeclaredAccessError{Stage: s.stage, Key: key, Op: "read"}
	}
	return v, nil
}

// Set writes a declared output key, subject to the store's single-writer rule.
func (s *Scope) Set(key Key, value string) error {
	if !s.writable[key] {
		return &UndeclaredAccessError{Stage: s.stage, Key: key, Op: "write"}
	}
	return s.store.Set(key, value)
}
