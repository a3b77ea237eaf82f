package problemgen

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no options", "What is 2 + 2?", "What is 2 + 2?"},
		{"letter options", "What is 2 + 2?\nA) 3\nB) 4\nC) 5\nD) 6", "What is 2 + 2?"},
		{"lowercase parenthesised", "Pick the planet:\n  (b) Mars\n  (c) Moon", "Pick the planet:"},
		{"numbered", "Which is a noun?  \n\n1) run\n2) dog", "Which is a noun?"},
		{"tab indent", "Name the capital.\n\tA) Paris", "Name the capital."},
		{"marker mid-line is kept", "Plan A) is better than plan B.", "Plan A) is better than plan B."},
		{"trailing whitespace", "What is 3 × 3?   \n", "What is 3 × 3?"},
		{"only options", "A) one\nB) two", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func validQuestion() *Question {
	return &Question{
		Text:         "What is 6 × 7?",
		Options:      []string{"40", "42", "48", "36"},
		CorrectIndex: 1,
		Explanation:  "6 × 7 = 42",
		Difficulty:   2,
		Subject:      SubjectMath,
		GradeLevel:   3,
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}

	if err := v.Validate(validQuestion(), GenerateInput{}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"empty text", func(q *Question) { q.Text = "  " }},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }},
		{"five options", func(q *Question) { q.Options = append(q.Options, "50") }},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }},
		{"index past end", func(q *Question) { q.CorrectIndex = 4 }},
		{"empty correct option", func(q *Question) { q.Options[1] = " " }},
		{"short word option", func(q *Question) { q.Options = []string{"Paris", "Rome", "ok", "Berlin"} }},
		{"duplicate after normalisation", func(q *Question) { q.Options = []string{"Red  Apple", "red apple", "Green", "Blue"} }},
		{"difficulty too high", func(q *Question) { q.Difficulty = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, GenerateInput{})
			if err == nil {
				t.Fatal("expected rejection")
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q, want structural", err.Validator)
			}
		})
	}
}

func TestStructuralValidator_ShortNumericOptions(t *testing.T) {
	q := validQuestion()
	q.Text = "What is 3 + 4?"
	q.Options = []string{"5", "6", "7", "8"}
	q.CorrectIndex = 2
	if err := (&StructuralValidator{}).Validate(q, GenerateInput{}); err != nil {
		t.Errorf("single-digit numeric options should pass: %v", err)
	}

	q.Options = []string{"5", "6", "no", "8"}
	q.CorrectIndex = 0
	if err := (&StructuralValidator{}).Validate(q, GenerateInput{}); err == nil {
		t.Error("a short option without a digit should still be rejected")
	}
}

func TestDistinctOptions(t *testing.T) {
	if !DistinctOptions([]string{"a cat", "a dog", "a cow", "a hen"}) {
		t.Error("distinct options reported as duplicates")
	}
	if DistinctOptions([]string{"A Cat", "a  cat", "dog", "cow"}) {
		t.Error("case and whitespace variants should collide")
	}
}

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		text    string
		want    bool
	}{
		{"sparse text accepted", SubjectMath, "What is 3 + 4?", true},
		{"sparse text accepted for any subject", SubjectReading, "What is 3 + 4?", true},
		{"science drift in math", SubjectMath, "Which planet is closest to the sun, and what gas do plants need?", false},
		{"science in science", SubjectScience, "Which planet is closest to the sun, and what gas do plants need?", true},
		{"tie favours requested", SubjectMath, "What is the sum of the planets?", true},
		{"tie favours requested science", SubjectScience, "What is the sum of the planets?", true},
		{"loses to both", SubjectReading, "What is the sum of the planets?", false},
		{"reading", SubjectReading, "Which word is a synonym for happy in this sentence?", true},
		{"social", SubjectSocial, "What is the capital city of the country Japan?", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopicMatches(tt.subject, tt.text); got != tt.want {
				t.Errorf("TopicMatches(%s, %q) = %v, want %v (counts %v)", tt.subject, tt.text, got, tt.want, topicCounts(tt.text))
			}
		})
	}
}

func TestTopicValidator_UsesRequestedSubject(t *testing.T) {
	q := validQuestion()
	q.Text = "Which animal habitat has the most plants and the most water?"
	err := (&TopicValidator{}).Validate(q, GenerateInput{Subject: SubjectMath})
	if err == nil || !strings.Contains(err.Error(), "math") {
		t.Errorf("expected topic rejection naming math, got %v", err)
	}
}

func TestTopicValidator_ReadsOptions(t *testing.T) {
	q := validQuestion()
	q.Text = "Which one is it?"
	q.Options = []string{"A plant cell", "An animal cell", "Oxygen gas", "Sound energy"}
	q.CorrectIndex = 0

	err := (&TopicValidator{}).Validate(q, GenerateInput{Subject: SubjectMath})
	if err == nil {
		t.Fatal("expected options in another subject to be rejected")
	}

	q.Subject = SubjectScience
	if err := (&TopicValidator{}).Validate(q, GenerateInput{Subject: SubjectScience}); err != nil {
		t.Errorf("science options under science: %v", err)
	}
}
