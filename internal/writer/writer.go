// Package writer implements the third pipeline stage: generating the quiz
// document from the validated plan and rendering it to markdown.
package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/pipeline"
	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/state"
)

const systemPrompt = `You are a careful exam writer and tutor.

You receive a quiz plan and a study material summary. Write the full quiz exactly as the plan prescribes.

Rules:
- Label questions Q1, Q2, ... in order, with no gaps.
- Use the per-question difficulty assignment you are given, in order.
- Tag every question with one or more topic names taken only from the plan's topics. Never invent topics.
- For multiple_choice questions provide 4 options with exactly one correct. Distractors should reflect plausible mistakes.
- Give every question a hint (may be brief) and a solution that shows intermediate steps and reasoning, never just the final answer.
- For math, state the formulas used and why. Point out common mistakes where relevant.`

// Config controls the writer stage.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard writer stage configuration.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7}
}

// Stage produces the final quiz markdown. It satisfies pipeline.Stage.
type Stage struct {
	provider llm.Provider
	cfg      Config
}

// New creates the writer stage.
func New(provider llm.Provider, cfg Config) *Stage {
	return &Stage{provider: provider, cfg: cfg}
}

func (s *Stage) Name() string { return "writer" }

func (s *Stage) Requires() []state.Key {
	return []state.Key{pipeline.KeyQuizPlan, pipeline.KeyStudyMaterialSummary}
}

func (s *Stage) Produces() []state.Key {
	return []state.Key{pipeline.KeyQuizMarkdown}
}

// Run asks the model for a document conforming to quiz.DocumentSchema,
// validates it against the plan, renders markdown, and commits it. A
// document that violates the plan fails the stage with nothing written.
func (s *Stage) Run(ctx context.Context, sc *state.Scope) error {
	ctx = llm.WithPurpose(ctx, "writer")

	planJSON, err := sc.Get(pipeline.KeyQuizPlan)
	if err != nil {
		return err
	}
	summary, err := sc.Get(pipeline.KeyStudyMaterialSummary)
	if err != nil {
		return err
	}

	// The planner committed canonical validated JSON; a parse failure here
	// means upstream state was corrupted, not a model fault.
	plan, err := quiz.ParsePlan(json.RawMessage(planJSON))
	if err != nil {
		return fmt.Errorf("reload quiz plan: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(planJSON, summary, plan)},
		},
		Schema:      quiz.DocumentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("quiz generation: %w", err)
	}

	doc, err := quiz.ParseDocument(resp.Content, plan)
	if err != nil {
		return err
	}

	return sc.Set(pipeline.KeyQuizMarkdown, quiz.RenderMarkdown(doc))
}

func buildUserMessage(planJSON, summary string, plan *quiz.Plan) string {
	var b strings.Builder

	b.WriteString("Quiz plan:\n\n")
	b.WriteString(planJSON)
	b.WriteString("\n\n")

	// Spell out the derived assignment so the model does not have to
	// apportion unnormalized weights itself.
	b.WriteString("Per-question difficulty assignment:\n")
	for i, d := range plan.AssignDifficulties() {
		fmt.Fprintf(&b, "- Q%d: %s\n", i+1, d)
	}

	levels := plan.Difficulties()
	names := make([]string, len(levels))
	for i, d := range levels {
		names[i] = string(d)
	}
	fmt.Fprintf(&b, "\nAllowed difficulty tags: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Allowed topics: %s\n", strings.Join(plan.TopicNames(), ", "))

	b.WriteString("\nStudy material summary:\n\n")
	b.WriteString(summary)

	return b.String()
}
