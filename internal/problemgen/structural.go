package problemgen

import (
	"fmt"
	"regexp"
	"strings"
)

// optionMarkerRe finds a line that starts an inline option list, e.g.
// "A) 12", "(b) 7" or "1) red".
var optionMarkerRe = regexp.MustCompile(`(?im)^[ \t]*\(?(?:[a-h]|[1-9])\)`)

// SanitizeText strips option lists that providers sometimes echo into the
// question body. Everything from the first line-leading option marker on
// is dropped.
func SanitizeText(text string) string {
	if loc := optionMarkerRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimRight(text, " \t\r\n")
}

// minOptionLen is the length an option must exceed to count as
// substantive. Options containing a digit always count, so short numeric
// answers like "42" survive.
const minOptionLen = 2

// StructuralValidator checks that a question is well formed: non-empty
// text, exactly four distinct substantive options and a correct index that
// points at a non-empty option.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fail("expected %d options, got %d", OptionCount, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fail("correct index %d out of range", q.CorrectIndex)
	}
	if strings.TrimSpace(q.CorrectOption()) == "" {
		return fail("correct option is empty")
	}
	for i, o := range q.Options {
		if !substantive(o) {
			return fail("option %d %q is too short", i, o)
		}
	}
	if !DistinctOptions(q.Options) {
		return fail("options are not distinct")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fail("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	}
	return nil
}

// substantive reports whether an option carries enough content. Options with
// a digit are always substantive so short numeric answers like "7" pass.
func substantive(option string) bool {
	option = strings.TrimSpace(option)
	if len([]rune(option)) > minOptionLen {
		return true
	}
	return strings.ContainsAny(option, "0123456789")
}

// DistinctOptions reports whether no two options are equal after case and
// whitespace normalisation.
func DistinctOptions(options []string) bool {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		key := NormalizeText(o)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
