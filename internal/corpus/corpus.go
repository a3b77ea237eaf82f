// Package corpus provides the built-in offline question set used to seed
// banks and to fill them when generation falls short.
package corpus

import (
	"slices"

	"github.com/abhisek/quizbank/internal/problemgen"
)

// Corpus is a pure lookup of ready-made questions.
type Corpus interface {
	// QuestionsFor returns copies of every question for subject at exactly
	// difficulty, in a stable order.
	QuestionsFor(subject problemgen.Subject, difficulty int) []problemgen.Question
}

// StaticCorpus is an in-memory Corpus.
type StaticCorpus struct {
	bySubject map[problemgen.Subject][]problemgen.Question
}

var static = NewStatic(map[problemgen.Subject][]problemgen.Question{
	problemgen.SubjectMath:    mathSeed,
	problemgen.SubjectScience: scienceSeed,
	problemgen.SubjectReading: readingSeed,
	problemgen.SubjectSocial:  socialSeed,
})

// Static returns the built-in corpus.
func Static() *StaticCorpus {
	return static
}

// NewStatic builds a corpus from explicit question lists. Each question's
// Subject is set from its map key.
func NewStatic(bySubject map[problemgen.Subject][]problemgen.Question) *StaticCorpus {
	c := &StaticCorpus{bySubject: make(map[problemgen.Subject][]problemgen.Question, len(bySubject))}
	for subject, qs := range bySubject {
		for _, q := range qs {
			q.Subject = subject
			c.bySubject[subject] = append(c.bySubject[subject], q)
		}
	}
	return c
}

func (c *StaticCorpus) QuestionsFor(subject problemgen.Subject, difficulty int) []problemgen.Question {
	var out []problemgen.Question
	for _, q := range c.bySubject[subject] {
		if q.Difficulty == difficulty {
			q.Options = slices.Clone(q.Options)
			out = append(out, q)
		}
	}
	return out
}

// Len returns the number of questions held for subject.
func (c *StaticCorpus) Len(subject problemgen.Subject) int {
	return len(c.bySubject[subject])
}

// q keeps the seed tables compact.
func q(difficulty, grade int, text, explanation string, correct int, options ...string) problemgen.Question {
	return problemgen.Question{
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  explanation,
		Difficulty:   difficulty,
		GradeLevel:   grade,
	}
}
