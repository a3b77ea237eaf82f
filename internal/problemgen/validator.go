package problemgen

import (
	"fmt"

	"github.com/samber/lo"
)

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "topic", "answer-check".
	Name() string

	// Validate checks the question and returns nil if it passes. A
	// validator may repair the question in place, e.g. to fix the
	// correct index.
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Verdict is the outcome of checking a question's claimed answer.
type Verdict int

const (
	Accepted Verdict = iota
	Corrected
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Corrected:
		return "corrected"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// ValidateAnswer re-derives the answer to q and compares it with the
// claimed correct option. When the question text is recognised, the
// computed value must appear among the options: at the claimed index the
// question is accepted, elsewhere the index is moved there, and nowhere the
// question is rejected. Unrecognised questions fall back to checking the
// arithmetic inside the explanation.
//
// The returned question is a copy; option text is never modified.
func ValidateAnswer(q Question) (Question, Verdict) {
	q.Options = append([]string(nil), q.Options...)
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return q, Rejected
	}
	values := parseOptions(q.Options)

	computed, err := ExtractAnswer(q.Text)
	if err != nil {
		return checkExplanation(q, values)
	}

	idx := matchingOptions(values, computed)
	switch {
	case len(idx) == 0:
		return q, Rejected
	case lo.Contains(idx, q.CorrectIndex):
		return q, Accepted
	default:
		q.CorrectIndex = idx[0]
		return q, Corrected
	}
}

// AnswerValidator runs ValidateAnswer as part of a validator chain. It only
// applies to numeric subjects and repairs the correct index in place.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer-check" }

func (v *AnswerValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if !q.Subject.IsNumeric() {
		return nil
	}
	fixed, verdict := ValidateAnswer(*q)
	switch verdict {
	case Rejected:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("no option agrees with the recomputed answer (claimed %q)", q.CorrectOption()),
			Retryable: true,
		}
	case Corrected:
		*q = fixed
	}
	return nil
}
