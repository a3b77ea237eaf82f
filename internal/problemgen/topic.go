package problemgen

import (
	"fmt"
	"regexp"
	"strings"
)

// subjectKeywords are the vocabulary signals used to detect a question that
// drifted into another subject.
var subjectKeywords = map[Subject][]string{
	SubjectMath: {
		"add", "sum", "subtract", "difference", "multiply", "product", "divide",
		"quotient", "fraction", "decimal", "percent", "area", "perimeter",
		"volume", "equation", "solve", "number", "digit", "plus", "minus",
		"times", "total", "remainder", "angle", "triangle", "rectangle",
		"circle", "square", "even", "odd", "factor", "multiple", "calculate",
	},
	SubjectScience: {
		"plant", "animal", "cell", "energy", "force", "gravity", "planet",
		"sun", "moon", "water", "atom", "molecule", "experiment", "habitat",
		"photosynthesis", "organism", "weather", "rock", "mineral", "magnet",
		"electricity", "heat", "light", "sound", "ecosystem", "species",
		"oxygen", "chemical", "matter", "solid", "liquid", "gas", "body",
	},
	SubjectReading: {
		"story", "character", "author", "word", "sentence", "paragraph",
		"meaning", "synonym", "antonym", "noun", "verb", "adjective",
		"adverb", "poem", "rhyme", "plot", "setting", "theme", "vowel",
		"spell", "spelling", "prefix", "suffix", "reading", "book", "title",
		"punctuation", "grammar", "narrator", "main idea", "opposite",
	},
	SubjectSocial: {
		"country", "capital", "continent", "government", "president",
		"history", "map", "community", "citizen", "culture", "law", "vote",
		"election", "river", "ocean", "mountain", "state", "city", "war",
		"trade", "economy", "money", "flag", "holiday", "tradition",
		"ancient", "explorer", "colony", "constitution", "geography",
	},
}

// keywordRes holds one compiled whole-word pattern per subject.
var keywordRes = func() map[Subject]*regexp.Regexp {
	out := make(map[Subject]*regexp.Regexp, len(subjectKeywords))
	for sub, words := range subjectKeywords {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		out[sub] = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)(?:s|es)?\b`)
	}
	return out
}()

// minTopicHits is the number of keyword hits below which the text is too
// sparse to judge.
const minTopicHits = 2

// TopicMatches reports whether text plausibly belongs to subject. Sparse
// text is accepted; otherwise the requested subject must score at least as
// many keyword hits as every other subject.
func TopicMatches(subject Subject, text string) bool {
	counts := topicCounts(text)
	total := 0
	for _, c := range counts {
		total += c
	}
	if total < minTopicHits {
		return true
	}
	want := counts[subject]
	for sub, c := range counts {
		if sub != subject && c > want {
			return false
		}
	}
	return true
}

func topicCounts(text string) map[Subject]int {
	text = strings.ToLower(text)
	counts := make(map[Subject]int, len(keywordRes))
	for sub, re := range keywordRes {
		counts[sub] = len(re.FindAllStringIndex(text, -1))
	}
	return counts
}

// TopicValidator rejects questions whose wording, options included, belongs
// to another subject.
type TopicValidator struct{}

func (v *TopicValidator) Name() string { return "topic" }

func (v *TopicValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	subject := input.Subject
	if subject == "" {
		subject = q.Subject
	}
	if TopicMatches(subject, q.Text+" "+strings.Join(q.Options, " ")) {
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question does not read as %s", subject),
		Retryable: true,
	}
}
