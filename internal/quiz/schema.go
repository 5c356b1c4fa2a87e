package quiz

import "github.com/abhisek/quizcrafter/internal/llm"

// PlanSchema defines the JSON schema for quiz plan generation responses.
var PlanSchema = &llm.Schema{
	Name:        "quiz-plan",
	Description: "A quiz blueprint with question counts, types, difficulty mix, and topic coverage",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total_questions": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "Total number of questions in the quiz",
			},
			"question_types": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
					"enum": []any{"multiple_choice", "short_answer", "free_response"},
				},
				"minItems":    1,
				"description": "Question kinds the quiz may use",
			},
			"difficulty_mix": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"easy":   map[string]any{"type": "integer", "minimum": 0},
					"medium": map[string]any{"type": "integer", "minimum": 0},
					"hard":   map[string]any{"type": "integer", "minimum": 0},
				},
				"additionalProperties": false,
				"description":          "Non-negative weights per difficulty level; they need not sum to total_questions",
			},
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Short, descriptive topic name",
						},
						"weight": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Relative coverage weight",
						},
						"target_skill": map[string]any{
							"type":        "string",
							"description": "Skill exercised, e.g. concept recall, calculation, proof/derivation",
						},
					},
					"required":             []any{"name", "weight", "target_skill"},
					"additionalProperties": false,
				},
				"minItems":    1,
				"description": "Ordered topic coverage for the quiz",
			},
		},
		"required":             []any{"total_questions", "question_types", "difficulty_mix", "topics"},
		"additionalProperties": false,
	},
}

// DocumentSchema defines the JSON schema for quiz document generation
// responses. Structural invariants the schema cannot express (label
// monotonicity, exactly one correct choice, plan-scoped tags) are enforced
// by Document.Validate.
var DocumentSchema = &llm.Schema{
	Name:        "quiz-document",
	Description: "A full practice quiz with labeled questions, hints, and step-by-step solutions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Quiz title, e.g. 'Practice Quiz: Vector Calculus'",
			},
			"instructions": map[string]any{
				"type":        "string",
				"description": "Short instructions for the student (time suggestion, allowed tools)",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type":        "string",
							"description": "Sequential label: Q1, Q2, ...",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "short_answer", "free_response"},
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"topics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    1,
							"description": "Topic tags drawn only from the plan's topic names",
						},
						"choices": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text":    map[string]any{"type": "string"},
									"correct": map[string]any{"type": "boolean"},
								},
								"required":             []any{"text", "correct"},
								"additionalProperties": false,
							},
							"description": "Options for multiple_choice questions (exactly one correct); empty for other types",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "Optional hint; empty string when none",
						},
						"solution": map[string]any{
							"type":        "string",
							"description": "Step-by-step solution with intermediate reasoning, never just the final answer",
						},
					},
					"required":             []any{"label", "text", "type", "difficulty", "topics", "choices", "hint", "solution"},
					"additionalProperties": false,
				},
				"minItems":    1,
				"description": "Quiz questions in order",
			},
		},
		"required":             []any{"title", "instructions", "questions"},
		"additionalProperties": false,
	},
}
