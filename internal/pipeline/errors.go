package pipeline

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizcrafter/internal/state"
)

// MissingStateError indicates a stage's required keys were absent from the
// store when its turn came. The stage was not invoked.
type MissingStateError struct {
	Stage string
	Keys  []state.Key
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("stage %q: missing upstream state: %s", e.Stage, joinKeys(e.Keys))
}

// ContractViolationError indicates a stage returned without writing all of
// its declared output keys.
type ContractViolationError struct {
	Stage string
	Keys  []state.Key
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("stage %q: contract violation: declared outputs not written: %s", e.Stage, joinKeys(e.Keys))
}

// StageError wraps a failure raised by a stage itself, tagging it with the
// stage name so the boundary can report where the run died.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func joinKeys(keys []state.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
