package quiz

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *Plan {
	return &Plan{
		TotalQuestions: 4,
		QuestionTypes:  []QuestionType{MultipleChoice},
		DifficultyMix:  map[Difficulty]int{Easy: 1, Medium: 2, Hard: 1},
		Topics: []Topic{
			{Name: "gradient", Weight: 1, TargetSkill: "calculation"},
			{Name: "divergence", Weight: 1, TargetSkill: "concept recall"},
		},
	}
}

func TestParsePlan_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"total_questions": 4,
		"question_types": ["multiple_choice", "short_answer"],
		"difficulty_mix": {"easy": 1, "medium": 2, "hard": 1},
		"topics": [
			{"name": "gradient", "weight": 2, "target_skill": "calculation"},
			{"name": "divergence", "weight": 1, "target_skill": "concept recall"}
		]
	}`)

	p, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TotalQuestions != 4 {
		t.Fatalf("expected 4 questions, got %d", p.TotalQuestions)
	}
	if len(p.Topics) != 2 || p.Topics[0].Name != "gradient" {
		t.Fatalf("unexpected topics: %+v", p.Topics)
	}
}

func TestParsePlan_InvalidJSON(t *testing.T) {
	_, err := ParsePlan(json.RawMessage(`not json`))
	var malformed *MalformedPlanError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPlanError, got %T: %v", err, err)
	}
	if malformed.Field != "(root)" {
		t.Fatalf("expected root field, got %q", malformed.Field)
	}
}

func TestPlanValidate_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Plan)
		wantField string
	}{
		{"zero questions", func(p *Plan) { p.TotalQuestions = 0 }, "total_questions"},
		{"negative questions", func(p *Plan) { p.TotalQuestions = -3 }, "total_questions"},
		{"no question types", func(p *Plan) { p.QuestionTypes = nil }, "question_types"},
		{"unknown question type", func(p *Plan) { p.QuestionTypes = []QuestionType{"essay"} }, "question_types"},
		{"empty mix", func(p *Plan) { p.DifficultyMix = nil }, "difficulty_mix"},
		{"unknown difficulty", func(p *Plan) { p.DifficultyMix = map[Difficulty]int{"brutal": 1} }, "difficulty_mix"},
		{"negative weight", func(p *Plan) { p.DifficultyMix[Easy] = -1 }, "difficulty_mix"},
		{"all-zero mix", func(p *Plan) { p.DifficultyMix = map[Difficulty]int{Easy: 0, Hard: 0} }, "difficulty_mix"},
		{"empty topics", func(p *Plan) { p.Topics = nil }, "topics"},
		{"unnamed topic", func(p *Plan) { p.Topics[1].Name = "" }, "topics[1].name"},
		{"all-zero topic weights", func(p *Plan) { p.Topics[0].Weight = 0; p.Topics[1].Weight = 0 }, "topics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)

			var malformed *MalformedPlanError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.wantField, malformed.Field)
		})
	}
}

func TestPlanValidate_FiveQuestionsEmptyTopics(t *testing.T) {
	p := validPlan()
	p.TotalQuestions = 5
	p.Topics = nil

	err := p.Validate()
	var malformed *MalformedPlanError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedPlanError, got %T", err)
	}
	if malformed.Field != "topics" {
		t.Fatalf("expected topics field, got %q", malformed.Field)
	}
}

func TestDifficulties_StableOrder(t *testing.T) {
	p := validPlan()
	assert.Equal(t, []Difficulty{Easy, Medium, Hard}, p.Difficulties())

	p.DifficultyMix = map[Difficulty]int{Hard: 2, Easy: 1}
	assert.Equal(t, []Difficulty{Easy, Hard}, p.Difficulties())
}

func TestAssignDifficulties_ExactSplit(t *testing.T) {
	p := validPlan() // 4 questions, easy:1 medium:2 hard:1
	got := p.AssignDifficulties()

	assert.Equal(t, []Difficulty{Easy, Medium, Medium, Hard}, got)
}

func TestAssignDifficulties_UnnormalizedWeights(t *testing.T) {
	p := validPlan()
	p.TotalQuestions = 7
	p.DifficultyMix = map[Difficulty]int{Easy: 10, Medium: 30, Hard: 10}

	got := p.AssignDifficulties()
	if len(got) != 7 {
		t.Fatalf("expected 7 assignments, got %d", len(got))
	}

	counts := map[Difficulty]int{}
	for _, d := range got {
		counts[d]++
	}
	// 7 * 10/50 = 1.4, 7 * 30/50 = 4.2, 7 * 10/50 = 1.4 → 1/4/1 plus one
	// leftover to the largest remainder (easy wins the tie).
	if counts[Medium] != 4 {
		t.Fatalf("expected 4 medium, got %v", counts)
	}
	if counts[Easy]+counts[Hard] != 3 {
		t.Fatalf("expected easy+hard = 3, got %v", counts)
	}
}

func TestAssignDifficulties_SingleLevel(t *testing.T) {
	p := validPlan()
	p.TotalQuestions = 3
	p.DifficultyMix = map[Difficulty]int{Hard: 5}

	got := p.AssignDifficulties()
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got))
	}
	for _, d := range got {
		if d != Hard {
			t.Fatalf("expected all hard, got %v", got)
		}
	}
}
