package problemgen

import (
	"fmt"
	"strings"
)

// Subject identifies one of the fixed content domains a question belongs to.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectScience Subject = "science"
	SubjectReading Subject = "reading"
	SubjectSocial  Subject = "social"
)

// Subjects lists every supported subject in display order.
var Subjects = []Subject{SubjectMath, SubjectScience, SubjectReading, SubjectSocial}

// ParseSubject resolves a user-supplied subject name.
func ParseSubject(s string) (Subject, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sub := range Subjects {
		if string(sub) == s {
			return sub, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// IsNumeric reports whether answers in this subject can be recomputed.
// Only math questions go through the answer validator.
func (s Subject) IsNumeric() bool { return s == SubjectMath }

// Difficulty and grade bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
	MinGrade      = 0
	MaxGrade      = 8
)

// ClampDifficulty pins d to the supported difficulty range.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// ClampGrade pins g to the supported grade range.
func ClampGrade(g int) int {
	if g < MinGrade {
		return MinGrade
	}
	if g > MaxGrade {
		return MaxGrade
	}
	return g
}

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a multiple-choice question as produced by a provider or the
// offline corpus.
type Question struct {
	// Text is the question prompt shown to the learner.
	Text string `json:"text"`

	// Options holds exactly four answer choices.
	Options []string `json:"options"`

	// CorrectIndex is the zero-based index of the correct option.
	CorrectIndex int `json:"correct_index"`

	// Explanation is a short worked solution shown after answering.
	Explanation string `json:"explanation"`

	// Difficulty is an ordinal from 1 (easy) to 5 (hard).
	Difficulty int `json:"difficulty"`

	Subject    Subject `json:"subject"`
	GradeLevel int     `json:"grade_level"`

	// Topic is an optional finer-grained label, e.g. "fractions".
	Topic string `json:"topic,omitempty"`
}

// CorrectOption returns the text of the correct option, or "" if the
// index is out of range.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// GenerateInput holds everything needed to request a single question.
type GenerateInput struct {
	Subject    Subject
	Topic      string
	GradeLevel int
	Difficulty int

	// PriorQuestions are texts already banked for this subject. The most
	// recent ones are passed to the provider so it avoids repeats.
	PriorQuestions []string
}
