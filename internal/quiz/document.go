package quiz

import (
	"encoding/json"
	"fmt"
)

// Choice is one option of a multiple-choice question.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is one entry of a quiz document.
type Question struct {
	// Label is "Q1", "Q2", ...: one-based, strictly increasing, no gaps.
	Label      string       `json:"label"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Difficulty Difficulty   `json:"difficulty"`
	Topics     []string     `json:"topics"`
	Choices    []Choice     `json:"choices"`
	// Hint may be empty; every question still has exactly one hint entry.
	Hint string `json:"hint"`
	// Solution must be non-empty and show intermediate reasoning steps.
	Solution string `json:"solution"`
}

// Document is the final quiz artifact produced by the writer stage.
type Document struct {
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	Questions    []Question `json:"questions"`
}

// MalformedDocumentError reports a quiz document that failed structural
// validation against its plan.
type MalformedDocumentError struct {
	Question string // question label, or "(document)" for whole-document failures
	Reason   string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed quiz document: %s: %s", e.Question, e.Reason)
}

// ParseDocument parses raw provider JSON into a Document and validates it
// against the plan it was generated from.
func ParseDocument(raw json.RawMessage, plan *Plan) (*Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &MalformedDocumentError{Question: "(document)", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := d.Validate(plan); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks every document invariant: label monotonicity, question
// count, plan-scoped difficulty and topic tags, exactly one correct option
// for choice questions, and one hint plus one non-empty solution per
// question.
func (d *Document) Validate(plan *Plan) error {
	if d.Title == "" {
		return &MalformedDocumentError{Question: "(document)", Reason: "title is empty"}
	}
	if len(d.Questions) != plan.TotalQuestions {
		return &MalformedDocumentError{
			Question: "(document)",
			Reason:   fmt.Sprintf("expected %d questions, got %d", plan.TotalQuestions, len(d.Questions)),
		}
	}

	levels := make(map[Difficulty]bool, len(plan.DifficultyMix))
	for level := range plan.DifficultyMix {
		levels[level] = true
	}
	topics := make(map[string]bool, len(plan.Topics))
	for _, t := range plan.Topics {
		topics[t.Name] = true
	}
	types := make(map[QuestionType]bool, len(plan.QuestionTypes))
	for _, qt := range plan.QuestionTypes {
		types[qt] = true
	}

	for i, q := range d.Questions {
		want := fmt.Sprintf("Q%d", i+1)
		if q.Label != want {
			return &MalformedDocumentError{
				Question: q.Label,
				Reason:   fmt.Sprintf("expected label %q at position %d", want, i+1),
			}
		}
		if q.Text == "" {
			return &MalformedDocumentError{Question: q.Label, Reason: "question text is empty"}
		}
		if !types[q.Type] {
			return &MalformedDocumentError{
				Question: q.Label,
				Reason:   fmt.Sprintf("question type %q not declared in plan", q.Type),
			}
		}
		if !levels[q.Difficulty] {
			return &MalformedDocumentError{
				Question: q.Label,
				Reason:   fmt.Sprintf("difficulty %q not in plan's difficulty mix", q.Difficulty),
			}
		}
		if len(q.Topics) == 0 {
			return &MalformedDocumentError{Question: q.Label, Reason: "question has no topic tags"}
		}
		for _, topic := range q.Topics {
			if !topics[topic] {
				return &MalformedDocumentError{
					Question: q.Label,
					Reason:   fmt.Sprintf("topic %q not in plan's topic set", topic),
				}
			}
		}
		if q.Type == MultipleChoice {
			if len(q.Choices) < 2 {
				return &MalformedDocumentError{
					Question: q.Label,
					Reason:   fmt.Sprintf("multiple choice needs at least 2 options, got %d", len(q.Choices)),
				}
			}
			correct := 0
			for _, c := range q.Choices {
				if c.Correct {
					correct++
				}
			}
			if correct != 1 {
				return &MalformedDocumentError{
					Question: q.Label,
					Reason:   fmt.Sprintf("expected exactly 1 correct option, got %d", correct),
				}
			}
		} else if len(q.Choices) > 0 {
			return &MalformedDocumentError{
				Question: q.Label,
				Reason:   fmt.Sprintf("%s question must not carry choices", q.Type),
			}
		}
		if q.Solution == "" {
			return &MalformedDocumentError{Question: q.Label, Reason: "solution is empty"}
		}
	}
	return nil
}
