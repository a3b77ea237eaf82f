package bank

import (
	"slices"
	"sort"

	"github.com/samber/lo"

	"github.com/abhisek/quizbank/internal/problemgen"
)

// Selection scoring weights.
const (
	scoreExactDifficulty    = 100
	scoreAdjacentDifficulty = 50
	scoreOtherDifficulty    = 10
	penaltyRecent           = 200
	penaltyPerShow          = 5
	penaltyMastered         = 50
	jitterRange             = 10
)

type candidate struct {
	q     *BankedQuestion
	score float64
}

// Draw picks up to count questions for a quiz round at the requested
// difficulty. It returns nil when the subject holds fewer than MinReady
// questions or nothing could be selected. Drawn questions have their
// exposure updated and are pushed onto the recently-shown window.
func (b *Bank) Draw(subject problemgen.Subject, difficulty, count int) []BankedQuestion {
	b.mu.Lock()
	defer b.mu.Unlock()

	pool := b.subjects[subject]
	if len(pool) < b.policy.MinReady || count <= 0 {
		return nil
	}

	recent := lo.SliceToMap(b.recent[subject], func(id string) (string, struct{}) { return id, struct{}{} })

	candidates := make([]candidate, 0, len(pool))
	for _, q := range pool {
		if !problemgen.DistinctOptions(q.Options) {
			continue
		}
		_, isRecent := recent[q.ID]
		candidates = append(candidates, candidate{q: q, score: b.score(q, difficulty, isRecent)})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := min(count, len(candidates))
	now := b.now().UTC()
	drawn := make([]BankedQuestion, 0, n)
	for _, c := range candidates[:n] {
		c.q.TimesShown++
		shown := now
		c.q.LastShown = &shown
		b.recent[subject] = append(b.recent[subject], c.q.ID)
		drawn = append(drawn, c.q.clone())
	}

	if window := b.recent[subject]; len(window) > b.policy.RecentWindow {
		b.recent[subject] = slices.Clone(window[len(window)-b.policy.RecentWindow:])
	}
	return drawn
}

func (b *Bank) score(q *BankedQuestion, difficulty int, recent bool) float64 {
	var s float64
	switch d := q.Difficulty - difficulty; {
	case d == 0:
		s = scoreExactDifficulty
	case d == 1 || d == -1:
		s = scoreAdjacentDifficulty
	default:
		s = scoreOtherDifficulty
	}
	if recent {
		s -= penaltyRecent
	}
	s -= float64(penaltyPerShow * q.TimesShown)
	if q.IsMastered(b.policy) {
		s -= penaltyMastered
	}
	return s + b.jitter()*jitterRange
}

// Recent returns a copy of the recently-shown window for subject.
func (b *Bank) Recent(subject problemgen.Subject) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.recent[subject])
}
