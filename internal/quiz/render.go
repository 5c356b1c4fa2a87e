package quiz

import (
	"fmt"
	"strings"
)

// choiceLetters labels multiple-choice options A) through whatever is needed.
const choiceLetters = "ABCDEFGH"

// RenderMarkdown renders a validated document to its markdown form: title,
// instructions, questions with tags, then a Hints section and a Solutions
// section with one entry per question. The output is fully determined by
// the document, with no timestamps, so exporting the same document twice
// produces identical bytes.
func RenderMarkdown(d *Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if d.Instructions != "" {
		b.WriteString("## Instructions\n\n")
		b.WriteString(strings.TrimSpace(d.Instructions))
		b.WriteString("\n\n")
	}

	b.WriteString("## Questions\n\n")
	for _, q := range d.Questions {
		fmt.Fprintf(&b, "### %s [%s | %s]\n\n", q.Label, q.Difficulty, strings.Join(q.Topics, ", "))
		b.WriteString(strings.TrimSpace(q.Text))
		b.WriteString("\n\n")
		for i, c := range q.Choices {
			letter := "?"
			if i < len(choiceLetters) {
				letter = string(choiceLetters[i])
			}
			fmt.Fprintf(&b, "- %s) %s\n", letter, c.Text)
		}
		if len(q.Choices) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Hints\n\n")
	for _, q := range d.Questions {
		hint := strings.TrimSpace(q.Hint)
		if hint == "" {
			hint = "(no hint)"
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", q.Label, hint)
	}
	b.WriteString("\n")

	b.WriteString("## Solutions\n\n")
	for _, q := range d.Questions {
		fmt.Fprintf(&b, "### %s\n\n", q.Label)
		b.WriteString(strings.TrimSpace(q.Solution))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
