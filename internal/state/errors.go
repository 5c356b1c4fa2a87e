package state

import "fmt"

// DuplicateWriteError indicates a second write to a single-writer key.
type DuplicateWriteError struct {
	Key Key
}

func (e *DuplicateWriteError) Error() string {
	return fmt.Sprintf("state key %q already written", e.Key)
}

// UndeclaredAccessError indicates a stage touched a key it never declared.
type UndeclaredAccessError struct {
	Stage string
	Key   Key
	Op    string // "read" or "write"
}

func (e *UndeclaredAccessError) Error() string {
	return fmt.Sprintf("stage %q attempted undeclared %s of state key %q", e.Stage, e.Op, e.Key)
}
