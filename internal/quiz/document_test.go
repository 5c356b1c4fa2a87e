package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validDocument() *Document {
	return &Document{
		Title:        "Practice Quiz: Vector Calculus",
		Instructions: "30 minutes, no calculator.",
		Questions: []Question{
			{
				Label:      "Q1",
				Text:       "What does the gradient of a scalar field point toward?",
				Type:       MultipleChoice,
				Difficulty: Easy,
				Topics:     []string{"gradient"},
				Choices: []Choice{
					{Text: "Steepest ascent", Correct: true},
					{Text: "Steepest descent"},
					{Text: "Zero change"},
					{Text: "Constant contours"},
				},
				Hint:     "Think about uphill directions.",
				Solution: "The gradient collects the partial derivatives. Step 1: ... Step 2: it points in the direction of steepest ascent.",
			},
			{
				Label:      "Q2",
				Text:       "Compute div F for F = (x, y, z).",
				Type:       MultipleChoice,
				Difficulty: Medium,
				Topics:     []string{"divergence"},
				Choices: []Choice{
					{Text: "0"},
					{Text: "3", Correct: true},
					{Text: "1"},
					{Text: "x+y+z"},
				},
				Hint:     "",
				Solution: "div F = dFx/dx + dFy/dy + dFz/dz = 1 + 1 + 1 = 3.",
			},
			{
				Label:      "Q3",
				Text:       "Compute div F for F = (x^2, 0, 0).",
				Type:       MultipleChoice,
				Difficulty: Medium,
				Topics:     []string{"divergence"},
				Choices: []Choice{
					{Text: "2x", Correct: true},
					{Text: "x^2"},
					{Text: "0"},
					{Text: "2"},
				},
				Hint:     "Differentiate each component.",
				Solution: "Only the x component contributes: d(x^2)/dx = 2x.",
			},
			{
				Label:      "Q4",
				Text:       "Is the gradient of f(x,y) = xy conservative as a vector field?",
				Type:       MultipleChoice,
				Difficulty: Hard,
				Topics:     []string{"gradient"},
				Choices: []Choice{
					{Text: "Yes", Correct: true},
					{Text: "No"},
				},
				Hint:     "Gradients are always conservative.",
				Solution: "Step 1: grad f = (y, x). Step 2: any gradient field is conservative, with potential f itself.",
			},
		},
	}
}

func TestDocumentValidate_Valid(t *testing.T) {
	if err := validDocument().Validate(validPlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDocumentValidate_LabelsMonotonic(t *testing.T) {
	d := validDocument()
	for i, q := range d.Questions {
		want := fmt.Sprintf("Q%d", i+1)
		if q.Label != want {
			t.Fatalf("expected label %q, got %q", want, q.Label)
		}
	}

	// A gap in the labels must be rejected.
	d.Questions[2].Label = "Q5"
	err := d.Validate(validPlan())
	var malformed *MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDocumentError, got %T: %v", err, err)
	}
	if malformed.Question != "Q5" {
		t.Fatalf("expected offending label Q5, got %q", malformed.Question)
	}
}

func TestDocumentValidate_RepeatedLabelRejected(t *testing.T) {
	d := validDocument()
	d.Questions[1].Label = "Q1"
	if err := d.Validate(validPlan()); err == nil {
		t.Fatal("expected repeated label to fail")
	}
}

func TestDocumentValidate_QuestionCountMismatch(t *testing.T) {
	d := validDocument()
	d.Questions = d.Questions[:3]
	err := d.Validate(validPlan())
	var malformed *MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDocumentError, got %T", err)
	}
	if !strings.Contains(malformed.Reason, "expected 4 questions") {
		t.Fatalf("unexpected reason: %s", malformed.Reason)
	}
}

func TestDocumentValidate_ExactlyOneCorrectChoice(t *testing.T) {
	d := validDocument()
	d.Questions[0].Choices[1].Correct = true // now two correct
	if err := d.Validate(validPlan()); err == nil {
		t.Fatal("expected two correct options to fail")
	}

	d = validDocument()
	for i := range d.Questions[0].Choices {
		d.Questions[0].Choices[i].Correct = false
	}
	if err := d.Validate(validPlan()); err == nil {
		t.Fatal("expected zero correct options to fail")
	}
}

func TestDocumentValidate_InventedTopicRejected(t *testing.T) {
	d := validDocument()
	d.Questions[3].Topics = []string{"curl"}
	err := d.Validate(validPlan())
	var malformed *MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDocumentError, got %T", err)
	}
	if !strings.Contains(malformed.Reason, `"curl"`) {
		t.Fatalf("expected invented topic named, got: %s", malformed.Reason)
	}
}

func TestDocumentValidate_DifficultyOutsidePlan(t *testing.T) {
	plan := validPlan()
	delete(plan.DifficultyMix, Hard)
	plan.DifficultyMix[Easy] = 2

	d := validDocument()
	if err := d.Validate(plan); err == nil {
		t.Fatal("expected hard question to fail against easy/medium-only plan")
	}
}

func TestDocumentValidate_EmptySolutionRejected(t *testing.T) {
	d := validDocument()
	d.Questions[1].Solution = ""
	if err := d.Validate(validPlan()); err == nil {
		t.Fatal("expected empty solution to fail")
	}
}

func TestDocumentValidate_EmptyHintAllowed(t *testing.T) {
	d := validDocument()
	d.Questions[0].Hint = ""
	if err := d.Validate(validPlan()); err != nil {
		t.Fatalf("empty hint must be allowed: %v", err)
	}
}

func TestDocumentValidate_ChoicesOnNonChoiceQuestion(t *testing.T) {
	plan := validPlan()
	plan.QuestionTypes = []QuestionType{MultipleChoice, ShortAnswer}

	d := validDocument()
	d.Questions[0].Type = ShortAnswer // still has choices attached
	if err := d.Validate(plan); err == nil {
		t.Fatal("expected choices on short_answer question to fail")
	}
}

func TestRenderMarkdown_Sections(t *testing.T) {
	md := RenderMarkdown(validDocument())

	for _, want := range []string{
		"# Practice Quiz: Vector Calculus",
		"## Instructions",
		"## Questions",
		"### Q1 [easy | gradient]",
		"- A) Steepest ascent",
		"## Hints",
		"- **Q2**: (no hint)",
		"## Solutions",
		"### Q4",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in rendered markdown:\n%s", want, md)
		}
	}
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	d := validDocument()
	if RenderMarkdown(d) != RenderMarkdown(d) {
		t.Fatal("rendering the same document twice must produce identical output")
	}
}
