// Package quiz defines the quiz plan and quiz document domain model, the
// JSON schemas sent to the generation provider, and the validation applied
// to provider output before it may enter the pipeline state.
package quiz

import (
	"encoding/json"
	"fmt"
)

// QuestionType enumerates the kinds of questions a plan may request.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
	FreeResponse   QuestionType = "free_response"
)

// Difficulty enumerates the difficulty levels of the plan's mix.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// difficultyOrder fixes a stable iteration order over the mix.
var difficultyOrder = []Difficulty{Easy, Medium, Hard}

// Topic is one coverage entry of a quiz plan.
type Topic struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	TargetSkill string `json:"target_skill"`
}

// Plan is the quiz blueprint produced by the planner stage. It arrives as
// untrusted provider JSON and is only committed to pipeline state after
// ParsePlan accepts it.
type Plan struct {
	TotalQuestions int                `json:"total_questions"`
	QuestionTypes  []QuestionType     `json:"question_types"`
	DifficultyMix  map[Difficulty]int `json:"difficulty_mix"`
	Topics         []Topic            `json:"topics"`
}

// MalformedPlanError reports a plan that failed parsing or invariant
// validation, naming the offending field.
type MalformedPlanError struct {
	Field  string
	Reason string
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("malformed quiz plan: field %q: %s", e.Field, e.Reason)
}

// ParsePlan parses raw provider JSON into a Plan and validates every plan
// invariant. On success the returned plan is safe to commit downstream.
func ParsePlan(raw json.RawMessage) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &MalformedPlanError{Field: "(root)", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan invariants. Weights need not be normalized, but
// the declared topics and types must be able to satisfy TotalQuestions.
func (p *Plan) Validate() error {
	if p.TotalQuestions <= 0 {
		return &MalformedPlanError{Field: "total_questions", Reason: "must be a positive integer"}
	}
	if len(p.QuestionTypes) == 0 {
		return &MalformedPlanError{Field: "question_types", Reason: "must not be empty"}
	}
	for _, qt := range p.QuestionTypes {
		switch qt {
		case MultipleChoice, ShortAnswer, FreeResponse:
		default:
			return &MalformedPlanError{Field: "question_types", Reason: fmt.Sprintf("unknown question type %q", qt)}
		}
	}
	if len(p.DifficultyMix) == 0 {
		return &MalformedPlanError{Field: "difficulty_mix", Reason: "must not be empty"}
	}
	mixTotal := 0
	for level, weight := range p.DifficultyMix {
		switch level {
		case Easy, Medium, Hard:
		default:
			return &MalformedPlanError{Field: "difficulty_mix", Reason: fmt.Sprintf("unknown difficulty %q", level)}
		}
		if weight < 0 {
			return &MalformedPlanError{Field: "difficulty_mix", Reason: fmt.Sprintf("%s weight must be non-negative", level)}
		}
		mixTotal += weight
	}
	if mixTotal == 0 {
		return &MalformedPlanError{Field: "difficulty_mix", Reason: "weights must not all be zero"}
	}
	if len(p.Topics) == 0 {
		return &MalformedPlanError{Field: "topics", Reason: "must not be empty when total_questions > 0"}
	}
	topicTotal := 0
	for i, t := range p.Topics {
		if t.Name == "" {
			return &MalformedPlanError{Field: fmt.Sprintf("topics[%d].name", i), Reason: "must not be empty"}
		}
		if t.Weight < 0 {
			return &MalformedPlanError{Field: fmt.Sprintf("topics[%d].weight", i), Reason: "must be non-negative"}
		}
		topicTotal += t.Weight
	}
	if topicTotal == 0 {
		return &MalformedPlanError{Field: "topics", Reason: "topic weights must not all be zero"}
	}
	return nil
}

// Difficulties returns the plan's declared difficulty levels in stable order.
func (p *Plan) Difficulties() []Difficulty {
	var out []Difficulty
	for _, d := range difficultyOrder {
		if _, ok := p.DifficultyMix[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// TopicNames returns the plan's topic names in declaration order.
func (p *Plan) TopicNames() []string {
	out := make([]string, len(p.Topics))
	for i, t := range p.Topics {
		out[i] = t.Name
	}
	return out
}

// AssignDifficulties apportions TotalQuestions over the difficulty mix by
// largest remainder, so the writer can derive a per-question assignment
// consistent with weights that do not pre-normalize. The result is stable:
// easy, then medium, then hard.
func (p *Plan) AssignDifficulties() []Difficulty {
	total := 0
	for _, d := range difficultyOrder {
		total += p.DifficultyMix[d]
	}
	if total == 0 {
		return nil
	}

	counts := make(map[Difficulty]int, len(difficultyOrder))
	type rem struct {
		level Difficulty
		frac  int // remainder scaled by total
	}
	var rems []rem
	assigned := 0
	for _, d := range difficultyOrder {
		w := p.DifficultyMix[d]
		n := p.TotalQuestions * w / total
		counts[d] = n
		assigned += n
		rems = append(rems, rem{level: d, frac: p.TotalQuestions*w - n*total})
	}

	// Hand out the leftover questions to the largest remainders; ties go to
	// the easier level so the assignment is deterministic.
	for assigned < p.TotalQuestions {
		best := 0
		for i := 1; i < len(rems); i++ {
			if rems[i].frac > rems[best].frac {
				best = i
			}
		}
		counts[rems[best].level]++
		rems[best].frac = -1
		assigned++
	}

	var out []Difficulty
	for _, d := range difficultyOrder {
		for i := 0; i < counts[d]; i++ {
			out = append(out, d)
		}
	}
	return out
}
