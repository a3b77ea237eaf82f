package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a tutor writing multiple-choice practice questions for children from kindergarten to grade 8.

Rules:
- Write a single question for the given subject, grade and difficulty.
- Stay strictly within the requested subject.
- The question text must be self-contained. Never list the answer options inside the question text.
- Provide exactly 4 options. Exactly one is correct; the others should reflect common mistakes.
- Options must be distinct and meaningful. Avoid "all of the above" and single-letter options.
- For math, use plain ASCII: * or x for multiplication, / for division and fractions, ^ for powers.
- The explanation shows the solution in one or two short steps. Every equation in it must be correct.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	fmt.Fprintf(&b, "Grade: %s\n", gradeLabel(input.GradeLevel))
	fmt.Fprintf(&b, "Difficulty: %d of %d\n", input.Difficulty, MaxDifficulty)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

func gradeLabel(grade int) string {
	if grade <= 0 {
		return "kindergarten"
	}
	return fmt.Sprintf("%d", grade)
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
