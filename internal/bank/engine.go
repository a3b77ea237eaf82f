package bank

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/abhisek/quizbank/internal/corpus"
	"github.com/abhisek/quizbank/internal/metrics"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/store"
)

// ErrNoProfile is returned by Save before any profile was loaded.
var ErrNoProfile = errors.New("no profile loaded")

// Engine is the caller-facing bank of one active profile. It wraps a Bank
// with persistence, background replenishment and metrics. Construct one
// per process and re-point it with Load on profile switch.
type Engine struct {
	bank    *Bank
	repo    store.SnapshotRepo
	gen     problemgen.Generator
	corpus  corpus.Corpus
	policy  Policy
	logger  zerolog.Logger
	metrics *metrics.Metrics
	limiter *rate.Limiter
	clock   func() time.Time

	onReplenished func(Report)

	profileMu sync.RWMutex
	profileID string

	saveMu sync.Mutex

	// flightMu guards inFlight, draining and closed, and orders wg.Add
	// before any wg.Wait.
	flightMu sync.Mutex
	inFlight map[problemgen.Subject]bool
	draining int
	closed   bool
	wg       sync.WaitGroup
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithPolicy overrides DefaultPolicy.
func WithPolicy(p Policy) EngineOption {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l.With().Str("component", "bank").Logger() }
}

// WithMetrics records draws and replenishment on m.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithClock replaces time.Now for exposure and staleness bookkeeping.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.clock = now }
}

// WithOnReplenished registers a callback run at the end of every
// background replenishment, on the replenishing goroutine.
func WithOnReplenished(fn func(Report)) EngineOption {
	return func(e *Engine) { e.onReplenished = fn }
}

// NewEngine builds an engine. gen may be nil, in which case replenishment
// only draws from the corpus.
func NewEngine(repo store.SnapshotRepo, gen problemgen.Generator, c corpus.Corpus, opts ...EngineOption) *Engine {
	e := &Engine{
		repo:     repo,
		gen:      gen,
		corpus:   c,
		policy:   DefaultPolicy(),
		logger:   zerolog.Nop(),
		inFlight: make(map[problemgen.Subject]bool),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.bank = New(e.policy)
	if e.clock != nil {
		e.bank.now = e.clock
	}

	limit := rate.Limit(e.policy.GenerateRate)
	if e.policy.GenerateRate <= 0 {
		limit = rate.Inf
	}
	e.limiter = rate.NewLimiter(limit, max(e.policy.GenerateBurst, 1))
	return e
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy { return e.policy }

// Online reports whether a generator is wired in.
func (e *Engine) Online() bool { return e.gen != nil }

// ProfileID returns the active profile, or "" before Load.
func (e *Engine) ProfileID() string {
	e.profileMu.RLock()
	defer e.profileMu.RUnlock()
	return e.profileID
}

// Load makes profileID the active profile, replacing the in-memory bank
// with its snapshot. A profile with no snapshot starts empty. In-flight
// replenishment for the previous profile is waited for first so it
// cannot write into the new one.
func (e *Engine) Load(ctx context.Context, profileID string) error {
	if profileID == "" {
		return errors.New("profile id is empty")
	}
	e.Wait()

	data, err := e.repo.Load(ctx, profileID)
	if err != nil {
		return fmt.Errorf("load snapshot for %s: %w", profileID, err)
	}

	if data == nil {
		e.bank.Reset()
	} else {
		dropped, err := e.bank.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("load snapshot for %s: %w", profileID, err)
		}
		if dropped > 0 {
			e.logger.Warn().Str("profile", profileID).Int("dropped", dropped).
				Msg("dropped malformed questions from snapshot")
		}
	}

	e.profileMu.Lock()
	e.profileID = profileID
	e.profileMu.Unlock()

	e.logger.Debug().Str("profile", profileID).Bool("found", data != nil).Msg("bank loaded")
	return nil
}

// Save writes the current bank snapshot for the active profile.
func (e *Engine) Save(ctx context.Context) error {
	profileID := e.ProfileID()
	if profileID == "" {
		return ErrNoProfile
	}

	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	data, err := e.bank.Marshal()
	if err != nil {
		return err
	}
	if err := e.repo.Save(ctx, profileID, data); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", profileID, err)
	}
	return nil
}

// persist saves and logs failure. The in-memory bank stays authoritative;
// the next successful save catches up.
func (e *Engine) persist(ctx context.Context) {
	if err := e.Save(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrNoProfile) {
		e.logger.Warn().Err(err).Msg("persist bank snapshot")
	}
}

// Draw selects a quiz round. It never touches the network; nil means the
// bank cannot serve this subject yet.
func (e *Engine) Draw(subject problemgen.Subject, difficulty, count int) []BankedQuestion {
	drawn := e.bank.Draw(subject, difficulty, count)
	e.metrics.Draw(string(subject), drawn != nil)
	if drawn == nil {
		return nil
	}
	e.persist(context.Background())
	return drawn
}

// RecordResults credits correct answers for a drawn round and persists.
func (e *Engine) RecordResults(subject problemgen.Subject, drawn []BankedQuestion, correct []bool) int {
	n := e.bank.RecordResults(subject, drawn, correct)
	e.persist(context.Background())
	return n
}

// Questions returns copies of the questions banked for subject.
func (e *Engine) Questions(subject problemgen.Subject) []BankedQuestion {
	return e.bank.Questions(subject)
}

// NeedsSeeding reports whether subject is below the quiz-readiness floor.
func (e *Engine) NeedsSeeding(subject problemgen.Subject) bool {
	return e.bank.Size(subject) < e.policy.MinReady
}

// QuickSeed synchronously fills subject from the corpus up to MinReady,
// taking questions round-robin across difficulties so the seed spans the
// range. It returns how many were added.
func (e *Engine) QuickSeed(subject problemgen.Subject) int {
	need := e.policy.MinReady - e.bank.Size(subject)
	if need <= 0 || e.corpus == nil {
		return 0
	}

	var tiers [][]problemgen.Question
	for d := problemgen.MinDifficulty; d <= problemgen.MaxDifficulty; d++ {
		tiers = append(tiers, e.corpus.QuestionsFor(subject, d))
	}

	added := 0
	for round := 0; added < need; round++ {
		progressed := false
		for _, tier := range tiers {
			if round >= len(tier) {
				continue
			}
			progressed = true
			if e.bank.Add(subject, SourceCorpus, tier[round]) {
				added++
				if added == need {
					break
				}
			}
		}
		if !progressed {
			break
		}
	}

	e.metrics.Added(string(subject), string(SourceCorpus), added)
	if added > 0 {
		e.persist(context.Background())
	}
	e.logger.Debug().Str("subject", string(subject)).Int("added", added).Msg("quick seed")
	return added
}

// Replenish starts a background top-up of subject. At most one run per
// subject is active; a call while one is running, while the engine is
// waiting for runs to finish, or after Close is dropped and Replenish
// returns false.
func (e *Engine) Replenish(subject problemgen.Subject, difficulty, gradeLevel int, results []bool) bool {
	if !e.acquire(subject) {
		e.metrics.Replenish(string(subject), false)
		e.logger.Debug().Str("subject", string(subject)).Msg("replenish not started")
		return false
	}
	e.metrics.Replenish(string(subject), true)

	target := AdaptDifficulty(difficulty, results, e.policy)
	go func() {
		defer e.wg.Done()
		defer e.release(subject)
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error().Interface("panic", r).Str("subject", string(subject)).Msg("replenish panicked")
			}
		}()

		ctx := context.Background()
		if e.policy.ReplenishTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.policy.ReplenishTimeout)
			defer cancel()
		}

		report := e.replenish(ctx, subject, target, gradeLevel)
		if e.onReplenished != nil {
			e.onReplenished(report)
		}
	}()
	return true
}

// EnrichWithAI tops subject up towards TargetCapacity in the background
// at the given difficulty, typically right after QuickSeed.
func (e *Engine) EnrichWithAI(subject problemgen.Subject, difficulty, gradeLevel int) bool {
	return e.Replenish(subject, difficulty, gradeLevel, nil)
}

// Replenishing reports whether a run for subject is in flight.
func (e *Engine) Replenishing(subject problemgen.Subject) bool {
	e.flightMu.Lock()
	defer e.flightMu.Unlock()
	return e.inFlight[subject]
}

// Wait blocks until every in-flight replenishment has finished. Runs
// requested while it waits are dropped.
func (e *Engine) Wait() {
	e.flightMu.Lock()
	e.draining++
	e.flightMu.Unlock()

	e.wg.Wait()

	e.flightMu.Lock()
	e.draining--
	e.flightMu.Unlock()
}

// Close stops accepting replenishment and waits for in-flight runs. It is
// safe to call more than once.
func (e *Engine) Close() {
	e.flightMu.Lock()
	e.closed = true
	e.flightMu.Unlock()
	e.wg.Wait()
}

// Stats summarises every subject of the active profile.
func (e *Engine) Stats() []SubjectStats {
	stats := e.bank.Stats()
	e.flightMu.Lock()
	defer e.flightMu.Unlock()
	for i := range stats {
		stats[i].Replenishing = e.inFlight[stats[i].Subject]
	}
	return stats
}

// Reset empties the bank and deletes the stored snapshot of the active
// profile.
func (e *Engine) Reset(ctx context.Context) error {
	e.Wait()
	e.bank.Reset()
	profileID := e.ProfileID()
	if profileID == "" {
		return nil
	}
	if err := e.repo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("reset %s: %w", profileID, err)
	}
	return nil
}

func (e *Engine) acquire(subject problemgen.Subject) bool {
	e.flightMu.Lock()
	defer e.flightMu.Unlock()
	if e.closed || e.draining > 0 || e.inFlight[subject] {
		return false
	}
	e.inFlight[subject] = true
	e.wg.Add(1)
	return true
}

func (e *Engine) release(subject problemgen.Subject) {
	e.flightMu.Lock()
	defer e.flightMu.Unlock()
	delete(e.inFlight, subject)
}
