// Package pipeline implements the sequential orchestrator that runs quiz
// generation stages against one shared state store. The orchestrator holds
// no quiz logic itself; it only enforces stage order and the declared
// input/output key contract.
package pipeline

import (
	"context"

	"github.com/abhisek/quizcrafter/internal/state"
)

// Stage is one unit of the pipeline. A stage declares the state keys it
// consumes and produces; the orchestrator verifies both sides of that
// contract around every invocation.
type Stage interface {
	// Name returns a short identifier, e.g. "materials", "planner", "writer".
	Name() string

	// Requires lists the state keys that must exist before the stage runs.
	Requires() []state.Key

	// Produces lists the state keys the stage must write before returning.
	Produces() []state.Key

	// Run executes the stage against a scope restricted to its declared keys.
	Run(ctx context.Context, sc *state.Scope) error
}

// Pipeline executes stages strictly in order against one state store.
type Pipeline struct {
	stages []Stage
}

// New creates a Pipeline over the given stage sequence.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order. Before a stage runs, all of its
// required keys must already be in the store; a missing key aborts with
// *MissingStateError without invoking that stage or any later one. After a
// stage returns, all of its declared outputs must have been written; a gap
// aborts with *ContractViolationError. Stage errors propagate immediately
// with no retry, leaving the store in its last-valid condition.
func (p *Pipeline) Run(ctx context.Context, store *state.Store) error {
	for _, stg := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		var missing []state.Key
		for _, k := range stg.Requires() {
			if !store.Has(k) {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return &MissingStateError{Stage: stg.Name(), Keys: missing}
		}

		sc := state.NewScope(stg.Name(), store, stg.Requires(), stg.Produces())
		if err := stg.Run(ctx, sc); err != nil {
			return &StageError{Stage: stg.Name(), Err: err}
		}

		var unwritten []state.Key
		for _, k := range stg.Produces() {
			if !store.Has(k) {
				unwritten = append(unwritten, k)
			}
		}
		if len(unwritten) > 0 {
			return &ContractViolationError{Stage: stg.Name(), Keys: unwritten}
		}
	}
	return nil
}
