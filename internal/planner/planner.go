// Package planner implements the second pipeline stage: turning the study
// material summary and the user's goal into a validated quiz plan.
package planner

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

const systemPrompt = `You are an expert instructor and assessment designer.

Design a quiz plan that balances conceptual understanding with calculation and procedure skills.

The user's goal may specify a total question count, allowed question types, or a desired difficulty. When the goal does not specify these, choose reasonable defaults for a focused practice quiz (8-12 questions).

Rules:
- difficulty_mix weights express relative emphasis; they do not have to sum to total_questions.
- Keep topic names short but descriptive, and draw them from the study material.
- Every topic needs a target_skill such as "concept recall", "calculation", or "proof/derivation".`

// Config controls the planner stage.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard planner stage configuration.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.4}
}

// Stage produces the quiz plan. It satisfies pipeline.Stage.
type Stage struct {
	provider llm.Provider
	cfg      Config
}

// New creates the planner stage.
func New(provider llm.Provider, cfg Config) *Stage {
	return &Stage{provider: provider, cfg: cfg}
}

func (s *Stage) Name() string { return "planner" }

func (s *Stage) Requires() []state.Key {
	return []state.Key{pipeline.KeyUserGoal, pipeline.KeyStudyMaterialSummary}
}

func (s *Stage) Produces() []state.Key {
	return []state.Key{pipeline.KeyQuizPlan}
}

// Run asks the model for a plan conforming to quiz.PlanSchema, re-validates
// it against the plan invariants, and commits the canonical JSON. Nothing
// is written when parsing or validation fails.
func (s *Stage) Run(ctx context.Context, sc *state.Scope) error {
	ctx = llm.WithPurpose(ctx, "planner")

	goal, err := sc.Get(pipeline.KeyUserGoal)
	if err != nil {
		return err
	}
	summary, err := sc.Get(pipeline.KeyStudyMaterialSummary)
	if err != nil {
		return err
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(goal, summary)},
		},
		Schema:      quiz.PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("plan generation: %w", err)
	}

	// Provider output passed the JSON schema, but the plan invariants
	// (satisfiable counts, non-zero weights) live here.
	plan, err := quiz.ParsePlan(resp.Content)
	if err != nil {
		return err
	}

	canonical, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return sc.Set(pipeline.KeyQuizPlan, string(canonical))
}

func buildUserMessage(goal, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", goal)
	b.WriteString("\nStudy material summary:\n\n")
	b.WriteString(summary)
	return b.String()
}
