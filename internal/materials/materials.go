// Package materials implements the first pipeline stage: loading study
// material from disk and condensing it into a summary the planner and
// writer stages consume.
package materials

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizcrafter/internal/ingest"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/pipeline"
	"github.com/abhisek/quizcrafter/internal/state"
)

const systemPrompt = `You are a study assistant that prepares raw material for quiz generation.

You receive the user's goal and, when files were provided, the combined text of their study materials with per-file headers.

Produce a concise summary of the important concepts, formulas, definitions, and typical question styles in the material.

Output format:
- Start with a short bullet list of key topics.
- Then a section "Concept Summary" with 3-8 paragraphs covering what a student should know.
- If files were provided, mention which files were used.`

// Config controls the materials stage.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard materials stage configuration.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.3}
}

// Stage summarizes study materials. It satisfies pipeline.Stage.
type Stage struct {
	provider llm.Provider
	loader   *ingest.Loader
	cfg      Config
}

// New creates the materials stage.
func New(provider llm.Provider, loader *ingest.Loader, cfg Config) *Stage {
	return &Stage{provider: provider, loader: loader, cfg: cfg}
}

func (s *Stage) Name() string { return "materials" }

func (s *Stage) Requires() []state.Key {
	return []state.Key{pipeline.KeyUserGoal, pipeline.KeyMaterialPattern}
}

func (s *Stage) Produces() []state.Key {
	return []state.Key{pipeline.KeyStudyMaterialSummary}
}

// Run loads matched files (when a pattern was given), asks the model for a
// summary, and commits it. Ingestion errors propagate unchanged so the
// boundary can report NoFilesMatched / UnreadableFile / UnsupportedFormat.
func (s *Stage) Run(ctx context.Context, sc *state.Scope) error {
	ctx = llm.WithPurpose(ctx, "materials")

	goal, err := sc.Get(pipeline.KeyUserGoal)
	if err != nil {
		return err
	}
	pattern, err := sc.Get(pipeline.KeyMaterialPattern)
	if err != nil {
		return err
	}

	var res *ingest.Result
	if pattern != "" {
		res, err = s.loader.Load(pattern)
		if err != nil {
			return err
		}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(goal, res)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("summarize materials: %w", err)
	}

	summary := strings.TrimSpace(string(resp.Content))
	if summary == "" {
		return fmt.Errorf("summarize materials: empty summary from provider")
	}

	return sc.Set(pipeline.KeyStudyMaterialSummary, summary)
}

func buildUserMessage(goal string, res *ingest.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s\n", goal)

	if res == nil {
		b.WriteString("\nNo files were provided. Treat the goal text itself as the study material.\n")
		return b.String()
	}

	b.WriteString("\nFiles loaded:\n")
	for _, f := range res.Files {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\nStudy material:\n\n")
	b.WriteString(res.CombinedText)

	return b.String()
}
