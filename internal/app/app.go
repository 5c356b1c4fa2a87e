// Package app drives one quiz generation run end to end: it seeds the
// per-run state store, assembles the three-stage pipeline, records the run,
// and performs any requested exports once the quiz markdown exists.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/quizcrafter/internal/export"
	"github.com/abhisek/quizcrafter/internal/ingest"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/materials"
	"github.com/abhisek/quizcrafter/internal/pipeline"
	"github.com/abhisek/quizcrafter/internal/planner"
	"github.com/abhisek/quizcrafter/internal/state"
	"github.com/abhisek/quizcrafter/internal/store"
	"github.com/abhisek/quizcrafter/internal/writer"
)

// Options configures a run. Provider is required; everything else has a
// usable zero value.
type Options struct {
	Provider llm.Provider

	// Runs records run rows when set. A nil repo disables recording.
	Runs store.RunRepo

	// IngestPolicy controls unsupported-extension handling during loading.
	IngestPolicy ingest.Policy

	Materials materials.Config
	Planner   planner.Config
	Writer    writer.Config

	// MarkdownPath and PDFPath request exports after a successful run.
	// Empty means no export of that kind.
	MarkdownPath string
	PDFPath      string
}

// Input is what the user asks for.
type Input struct {
	Goal string
	// MaterialPattern is a glob for study material files; empty runs the
	// pipeline on the goal alone.
	MaterialPattern string
}

// Outcome is the result of a successful run.
type Outcome struct {
	RunID         string
	QuizMarkdown  string
	ExportedPaths []string
}

// Run executes one full pipeline run. On failure the returned error carries
// the specific failure type; ErrorKind names it for reporting.
func Run(ctx context.Context, opts Options, in Input) (*Outcome, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("app: no provider configured")
	}
	if in.Goal == "" {
		return nil, fmt.Errorf("app: goal must not be empty")
	}

	st := state.New()
	ctx = llm.WithRun(ctx, st.RunID())

	if opts.Runs != nil {
		if err := opts.Runs.Begin(ctx, st.RunID(), in.Goal, in.MaterialPattern); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
		}
	}

	out, err := run(ctx, opts, in, st)
	if opts.Runs != nil {
		status, kind, msg := store.RunSucceeded, "", ""
		if err != nil {
			status, kind, msg = store.RunFailed, ErrorKind(err), err.Error()
		}
		if ferr := opts.Runs.Finish(ctx, st.RunID(), status, kind, msg); ferr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not finish run record: %v\n", ferr)
		}
	}
	return out, err
}

func run(ctx context.Context, opts Options, in Input, st *state.Store) (*Outcome, error) {
	if err := st.Set(pipeline.KeyUserGoal, in.Goal); err != nil {
		return nil, err
	}
	if err := st.Set(pipeline.KeyMaterialPattern, in.MaterialPattern); err != nil {
		return nil, err
	}

	p := pipeline.New(
		materials.New(opts.Provider, ingest.NewLoader(opts.IngestPolicy), orDefault(opts.Materials, materials.DefaultConfig())),
		planner.New(opts.Provider, orDefault(opts.Planner, planner.DefaultConfig())),
		writer.New(opts.Provider, orDefault(opts.Writer, writer.DefaultConfig())),
	)
	if err := p.Run(ctx, st); err != nil {
		return nil, err
	}

	md, ok := st.Get(pipeline.KeyQuizMarkdown)
	if !ok {
		// The pipeline's output contract check makes this unreachable.
		return nil, &pipeline.ContractViolationError{Stage: "writer", Keys: []state.Key{pipeline.KeyQuizMarkdown}}
	}

	out := &Outcome{RunID: st.RunID(), QuizMarkdown: md}
	if opts.MarkdownPath != "" {
		res, err := export.Markdown(md, opts.MarkdownPath)
		if err != nil {
			return nil, err
		}
		out.ExportedPaths = append(out.ExportedPaths, res.Path)
	}
	if opts.PDFPath != "" {
		res, err := export.PDF(md, opts.PDFPath)
		if err != nil {
			return nil, err
		}
		out.ExportedPaths = append(out.ExportedPaths, res.Path)
	}
	return out, nil
}

// orDefault substitutes def for a zero-valued stage config.
func orDefault[T comparable](cfg, def T) T {
	var zero T
	if cfg == zero {
		return def
	}
	return cfg
}
