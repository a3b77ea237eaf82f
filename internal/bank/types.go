package bank

import (
	"slices"
	"time"

	"github.com/abhisek/quizbank/internal/problemgen"
)

// Source records where a banked question came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceCorpus    Source = "static-corpus"
)

// BankedQuestion is a question held in a subject bank together with its
// exposure history.
type BankedQuestion struct {
	ID string `json:"id"`
	problemgen.Question

	Source       Source     `json:"source"`
	TimesShown   int        `json:"times_shown"`
	TimesCorrect int        `json:"times_correct"`
	LastShown    *time.Time `json:"last_shown,omitempty"`
	AddedAt      time.Time  `json:"added_at,omitzero"`
}

// IsMastered reports whether the learner reliably answers this question.
func (q *BankedQuestion) IsMastered(p Policy) bool {
	if q.TimesShown < p.MasteryMinShown || q.TimesShown == 0 {
		return false
	}
	return float64(q.TimesCorrect)/float64(q.TimesShown) >= p.MasteryRate
}

// clone returns a deep copy so callers never alias bank-owned state.
func (q *BankedQuestion) clone() BankedQuestion {
	c := *q
	c.Options = slices.Clone(q.Options)
	if q.LastShown != nil {
		t := *q.LastShown
		c.LastShown = &t
	}
	return c
}

// SubjectStats summarises one subject bank.
type SubjectStats struct {
	Subject         problemgen.Subject
	Size            int
	Mastered        int
	ByDifficulty    map[int]int
	BySource        map[Source]int
	LastReplenished time.Time
	Replenishing    bool
}

// Ready reports whether the bank can serve a quiz under p.
func (s SubjectStats) Ready(p Policy) bool {
	return s.Size >= p.MinReady
}
