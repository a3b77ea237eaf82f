package problemgen

import (
	"reflect"
	"testing"
)

func mathQuestion(text string, options []string, correct int) Question {
	return Question{
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  "Work it out step by step.",
		Difficulty:   2,
		Subject:      SubjectMath,
		GradeLevel:   3,
	}
}

func TestValidateAnswer_ExtractorVerdicts(t *testing.T) {
	options := []string{"40", "42", "48", "36"}
	tests := []struct {
		name        string
		q           Question
		wantVerdict Verdict
		wantIndex   int
	}{
		{"accepted", mathQuestion("What is 6 × 7?", options, 1), Accepted, 1},
		{"corrected", mathQuestion("What is 6 × 7?", options, 0), Corrected, 1},
		{"rejected", mathQuestion("What is 6 × 7?", []string{"40", "41", "48", "36"}, 1), Rejected, 1},
		{"units and currency", mathQuestion("What is 6 × 7?", []string{"$40", "$42", "$48", "$36"}, 3), Corrected, 1},
		{"fraction options", mathQuestion("What is 1/4 + 1/4?", []string{"2/8", "1/2", "2/4 cups", "1"}, 1), Accepted, 1},
		{"mixed number", mathQuestion("What is 5 / 2?", []string{"2 1/2", "3", "2", "1 1/2"}, 0), Accepted, 0},
		{"assignment form", mathQuestion("Solve 3x = 12.", []string{"x = 3", "x = 4", "x = 9", "x = 36"}, 0), Corrected, 1},
		{"rounded option", mathQuestion("What is the area of a circle with radius 3?", []string{"28.27", "18.85", "9.42", "113.1"}, 0), Accepted, 0},
		{"exact beats rounded neighbour", mathQuestion("What is 7.25 + 1.3?", []string{"8.55", "8.6", "8.5", "8.65"}, 1), Corrected, 0},
		{"terminating result not rounded", mathQuestion("What is 7.25 + 1.3?", []string{"8.6", "8.5", "8.7", "8.65"}, 0), Rejected, 0},
		{"repeating result rounded", mathQuestion("What is 10 ÷ 3?", []string{"3.5", "3.33", "3", "30"}, 1), Accepted, 1},
		{"dimensions with x", mathQuestion("What is the perimeter of a 8 x 5 rectangle?", []string{"26", "13", "40", "80"}, 0), Accepted, 0},
		{"claimed among several matches", mathQuestion("What is 6 × 7?", []string{"42", "40", "42.0", "36"}, 2), Accepted, 2},
		{"first match when claim is wrong", mathQuestion("What is 6 × 7?", []string{"42", "40", "42.0", "36"}, 1), Corrected, 0},
		{"index out of range", mathQuestion("What is 6 × 7?", options, 4), Rejected, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, verdict := ValidateAnswer(tt.q)
			if verdict != tt.wantVerdict {
				t.Fatalf("verdict = %s, want %s", verdict, tt.wantVerdict)
			}
			if got.CorrectIndex != tt.wantIndex {
				t.Errorf("CorrectIndex = %d, want %d", got.CorrectIndex, tt.wantIndex)
			}
			if !reflect.DeepEqual(got.Options, tt.q.Options) {
				t.Errorf("options changed: %v -> %v", tt.q.Options, got.Options)
			}
		})
	}
}

func TestValidateAnswer_Explanation(t *testing.T) {
	text := "A spider has 8 legs. How many legs do 5 spiders have?"
	options := []string{"40", "45", "50", "13"}

	tests := []struct {
		name        string
		explanation string
		claimed     int
		wantVerdict Verdict
		wantIndex   int
	}{
		{"wrong step rejects", "Each spider has 8 legs, so 8 × 5 = 50 legs.", 2, Rejected, 2},
		{"wrong word step rejects", "8 times 5 = 50 legs.", 2, Rejected, 2},
		{"wrong multiplied by step rejects", "8 multiplied by 5 equals 50.", 2, Rejected, 2},
		{"word step corrects", "Each spider has 8 legs and 8 times 5 is 40.", 2, Corrected, 0},
		{"final step corrects", "Each spider has 8 legs, so 8 × 5 = 40 legs.", 2, Corrected, 0},
		{"consistent", "Each spider has 8 legs, so 8 × 5 = 40 legs.", 0, Accepted, 0},
		{"unit words stripped", "8 legs × 5 spiders = 40 legs.", 1, Corrected, 0},
		{"no equation", "Count the legs on every spider.", 3, Accepted, 3},
		{"result matches nothing", "First 8 + 2 = 10.", 1, Accepted, 1},
		{"division by zero ignored", "Note 8 / 0 = 0 is undefined; 8 × 5 = 40.", 0, Accepted, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mathQuestion(text, options, tt.claimed)
			q.Explanation = tt.explanation

			got, verdict := ValidateAnswer(q)
			if verdict != tt.wantVerdict {
				t.Fatalf("verdict = %s, want %s", verdict, tt.wantVerdict)
			}
			if got.CorrectIndex != tt.wantIndex {
				t.Errorf("CorrectIndex = %d, want %d", got.CorrectIndex, tt.wantIndex)
			}
		})
	}
}

func TestValidateAnswer_Idempotent(t *testing.T) {
	q := mathQuestion("What is 9 + 8?", []string{"17", "18", "16", "71"}, 3)

	first, verdict := ValidateAnswer(q)
	if verdict != Corrected {
		t.Fatalf("first pass verdict = %s, want corrected", verdict)
	}
	second, verdict := ValidateAnswer(first)
	if verdict != Accepted {
		t.Fatalf("second pass verdict = %s, want accepted", verdict)
	}
	if second.CorrectIndex != first.CorrectIndex {
		t.Errorf("index moved on second pass: %d -> %d", first.CorrectIndex, second.CorrectIndex)
	}
}

func TestValidateAnswer_DoesNotAliasOptions(t *testing.T) {
	q := mathQuestion("What is 2 + 2?", []string{"3", "4", "5", "6"}, 0)
	got, _ := ValidateAnswer(q)
	got.Options[0] = "changed"
	if q.Options[0] != "3" {
		t.Error("ValidateAnswer result shares option storage with its input")
	}
}

func TestAnswerValidator(t *testing.T) {
	v := &AnswerValidator{}

	q := mathQuestion("What is 6 × 7?", []string{"40", "42", "48", "36"}, 0)
	if err := v.Validate(&q, GenerateInput{}); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if q.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", q.CorrectIndex)
	}

	bad := mathQuestion("What is 6 × 7?", []string{"40", "41", "48", "36"}, 0)
	err := v.Validate(&bad, GenerateInput{})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if err.Validator != "answer-check" || !err.Retryable {
		t.Errorf("unexpected error: %+v", err)
	}

	// Non-numeric subjects are never checked.
	sci := mathQuestion("What is 6 × 7?", []string{"40", "41", "48", "36"}, 0)
	sci.Subject = SubjectScience
	if err := v.Validate(&sci, GenerateInput{}); err != nil {
		t.Errorf("science question should pass through: %v", err)
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 1,250 ", 1250, true},
		{"$3.50", 3.5, true},
		{"25%", 25, true},
		{"12 cm²", 12, true},
		{"7 apples", 7, true},
		{"x = 5", 5, true},
		{"-3", -3, true},
		{"3/4", 0.75, true},
		{"2 1/2", 2.5, true},
		{"−1 1/2", -1.5, true},
		{"Paris", 0, false},
		{"3 and 4", 0, false},
		{"1/0", 0, false},
	}
	for _, tt := range tests {
		got := parseOption(tt.in)
		if got.ok != tt.ok {
			t.Errorf("parseOption(%q).ok = %v, want %v", tt.in, got.ok, tt.ok)
			continue
		}
		if tt.ok && got.value != tt.want {
			t.Errorf("parseOption(%q) = %v, want %v", tt.in, got.value, tt.want)
		}
	}
}
