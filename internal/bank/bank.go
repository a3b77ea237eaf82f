package bank

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/mod/semver"

	"github.com/abhisek/quizbank/internal/problemgen"
)

// SnapshotVersion is written into every snapshot. Snapshots with a
// different major version are refused on load.
const SnapshotVersion = "v1.0.0"

// Snapshot is the persisted form of a bank.
type Snapshot struct {
	Version         string                                   `json:"version"`
	Subjects        map[problemgen.Subject][]*BankedQuestion `json:"subjects"`
	LastReplenished map[problemgen.Subject]time.Time         `json:"last_replenished,omitempty"`
}

// Bank owns every banked question of one profile. All access goes through
// its methods; callers only ever receive copies.
type Bank struct {
	mu              sync.Mutex
	policy          Policy
	subjects        map[problemgen.Subject][]*BankedQuestion
	lastReplenished map[problemgen.Subject]time.Time
	recent          map[problemgen.Subject][]string

	now    func() time.Time
	jitter func() float64
}

// New returns an empty bank.
func New(policy Policy) *Bank {
	return &Bank{
		policy:          policy,
		subjects:        make(map[problemgen.Subject][]*BankedQuestion),
		lastReplenished: make(map[problemgen.Subject]time.Time),
		recent:          make(map[problemgen.Subject][]string),
		now:             time.Now,
		jitter:          rand.Float64,
	}
}

// Policy returns the bank's policy.
func (b *Bank) Policy() Policy {
	return b.policy
}

// Size returns the number of questions banked for subject.
func (b *Bank) Size(subject problemgen.Subject) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subjects[subject])
}

// Texts returns the text of every question banked for subject, oldest first.
func (b *Bank) Texts(subject problemgen.Subject) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lo.Map(b.subjects[subject], func(q *BankedQuestion, _ int) string { return q.Text })
}

// Questions returns copies of every question banked for subject.
func (b *Bank) Questions(subject problemgen.Subject) []BankedQuestion {
	b.mu.Lock()
	defer b.mu.Unlock()
	return lo.Map(b.subjects[subject], func(q *BankedQuestion, _ int) BankedQuestion { return q.clone() })
}

// Add banks q under subject unless it is malformed or its normalised text
// is already present. It reports whether q was added.
func (b *Bank) Add(subject problemgen.Subject, source Source, q problemgen.Question) bool {
	if len(q.Options) != problemgen.OptionCount || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return false
	}
	if !problemgen.DistinctOptions(q.Options) {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := problemgen.NormalizeText(q.Text)
	if key == "" || b.hasTextLocked(subject, key) {
		return false
	}

	q.Options = slices.Clone(q.Options)
	q.Subject = subject
	q.Difficulty = problemgen.ClampDifficulty(q.Difficulty)
	b.subjects[subject] = append(b.subjects[subject], &BankedQuestion{
		ID:       uuid.NewString(),
		Question: q,
		Source:   source,
		AddedAt:  b.now().UTC(),
	})
	return true
}

func (b *Bank) hasTextLocked(subject problemgen.Subject, normalized string) bool {
	return lo.ContainsBy(b.subjects[subject], func(q *BankedQuestion) bool {
		return problemgen.NormalizeText(q.Text) == normalized
	})
}

// RecordResults credits a correct answer to each drawn question whose flag
// is true. Questions are matched by normalised text, so results still land
// after the bank was reloaded between draw and answer. It returns the
// number of questions credited.
func (b *Bank) RecordResults(subject problemgen.Subject, drawn []BankedQuestion, correct []bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	credited := 0
	for i, d := range drawn {
		if i >= len(correct) || !correct[i] {
			continue
		}
		key := problemgen.NormalizeText(d.Text)
		q, ok := lo.Find(b.subjects[subject], func(q *BankedQuestion) bool {
			return problemgen.NormalizeText(q.Text) == key
		})
		if !ok {
			continue
		}
		q.TimesCorrect++
		credited++
	}
	return credited
}

// Prune removes mastered questions not shown for StaleAfter, never letting
// the subject drop below the prune floor. It returns how many were removed.
func (b *Bank) Prune(subject problemgen.Subject) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	pool := b.subjects[subject]
	floor := b.policy.PruneFloor()
	now := b.now()

	kept := make([]*BankedQuestion, 0, len(pool))
	removed := 0
	for i, q := range pool {
		if len(pool)-removed <= floor {
			kept = append(kept, pool[i:]...)
			break
		}
		if q.IsMastered(b.policy) && q.LastShown != nil && now.Sub(*q.LastShown) > b.policy.StaleAfter {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	b.subjects[subject] = kept
	return removed
}

// MarkReplenished records the replenish time for subject.
func (b *Bank) MarkReplenished(subject problemgen.Subject) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastReplenished[subject] = b.now().UTC()
}

// Stats summarises every supported subject, in display order.
func (b *Bank) Stats() []SubjectStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]SubjectStats, 0, len(problemgen.Subjects))
	for _, subject := range problemgen.Subjects {
		pool := b.subjects[subject]
		out = append(out, SubjectStats{
			Subject:         subject,
			Size:            len(pool),
			Mastered:        lo.CountBy(pool, func(q *BankedQuestion) bool { return q.IsMastered(b.policy) }),
			ByDifficulty:    lo.CountValuesBy(pool, func(q *BankedQuestion) int { return q.Difficulty }),
			BySource:        lo.CountValuesBy(pool, func(q *BankedQuestion) Source { return q.Source }),
			LastReplenished: b.lastReplenished[subject],
		})
	}
	return out
}

// Reset drops every question and the recently-shown windows.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subjects = make(map[problemgen.Subject][]*BankedQuestion)
	b.lastReplenished = make(map[problemgen.Subject]time.Time)
	b.recent = make(map[problemgen.Subject][]string)
}

// Marshal encodes the bank as a versioned snapshot. The recently-shown
// windows are not persisted.
func (b *Bank) Marshal() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		Version:         SnapshotVersion,
		Subjects:        b.subjects,
		LastReplenished: b.lastReplenished,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal replaces the bank contents with a decoded snapshot. Entries
// that no longer satisfy the question invariants are dropped, and fields
// missing from older snapshots get defaults. It returns the number of
// dropped entries.
func (b *Bank) Unmarshal(data []byte) (int, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != "" {
		if !semver.IsValid(snap.Version) {
			return 0, fmt.Errorf("snapshot version %q is not valid semver", snap.Version)
		}
		if semver.Major(snap.Version) != semver.Major(SnapshotVersion) {
			return 0, fmt.Errorf("snapshot version %s is not compatible with %s", snap.Version, SnapshotVersion)
		}
	}

	subjects := make(map[problemgen.Subject][]*BankedQuestion, len(snap.Subjects))
	dropped := 0
	for subject, pool := range snap.Subjects {
		kept := make([]*BankedQuestion, 0, len(pool))
		for _, q := range pool {
			if q == nil || len(q.Options) != problemgen.OptionCount ||
				q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				dropped++
				continue
			}
			if q.ID == "" {
				q.ID = uuid.NewString()
			}
			if q.Source == "" {
				q.Source = SourceGenerated
			}
			if q.Subject == "" {
				q.Subject = subject
			}
			kept = append(kept, q)
		}
		subjects[subject] = kept
	}

	last := snap.LastReplenished
	if last == nil {
		last = make(map[problemgen.Subject]time.Time)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subjects = subjects
	b.lastReplenished = last
	b.recent = make(map[problemgen.Subject][]string)
	return dropped, nil
}
