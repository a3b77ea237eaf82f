// Package app wires configuration, storage, the LLM provider stack and the
// bank engine into one runnable unit shared by every command.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/corpus"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/metrics"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/abhisek/quizbank/internal/ui/quiz"
)

// ErrNotReady is returned by Play when the bank cannot serve a round, even
// after seeding from the corpus.
var ErrNotReady = errors.New("bank is not ready for a quiz")

// App is the assembled runtime for one profile.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Engine   *bank.Engine
	Provider llm.Provider // nil when offline

	store      *store.Store
	runProgram func(ctx context.Context, m tea.Model) error
}

type options struct {
	provider      llm.Provider
	corpus        corpus.Corpus
	onReplenished func(bank.Report)
	runProgram    func(ctx context.Context, m tea.Model) error
}

// Option customises New.
type Option func(*options)

// WithProvider uses p instead of building one from the LLM config.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithCorpus replaces the built-in offline corpus.
func WithCorpus(c corpus.Corpus) Option {
	return func(o *options) { o.corpus = c }
}

// WithOnReplenished is passed through to the engine.
func WithOnReplenished(fn func(bank.Report)) Option {
	return func(o *options) { o.onReplenished = fn }
}

// WithProgramRunner replaces the bubbletea program loop used by Play.
func WithProgramRunner(run func(ctx context.Context, m tea.Model) error) Option {
	return func(o *options) { o.runProgram = run }
}

// New builds the app and loads the configured profile's bank.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	o := options{corpus: corpus.Static(), runProgram: runTea}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics.New(),
		runProgram: o.runProgram,
	}

	var (
		repo   store.SnapshotRepo
		events store.EventRepo
	)
	switch cfg.App.Storage {
	case config.StorageFile:
		fileRepo, err := store.NewFileSnapshotRepo(cfg.SnapshotDir())
		if err != nil {
			return nil, err
		}
		repo = fileRepo
	default:
		st, err := store.Open(cfg.App.DBPath)
		if err != nil {
			return nil, err
		}
		a.store = st
		repo = st.SnapshotRepo()
		events = st.EventRepo()
	}

	a.Provider = o.provider
	if a.Provider == nil {
		p, err := llm.NewProvider(ctx, cfg.LLM, events, logger)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			logger.Info().Msg("no LLM provider configured, serving from the built-in corpus only")
		case err != nil:
			a.Close()
			return nil, err
		default:
			a.Provider = p
		}
	}

	var gen problemgen.Generator
	if a.Provider != nil {
		gen = problemgen.New(a.Provider, problemgen.DefaultConfig(),
			problemgen.WithLogger(logger),
			problemgen.WithMetrics(a.Metrics),
		)
	}

	engineOpts := []bank.EngineOption{
		bank.WithPolicy(cfg.Bank),
		bank.WithLogger(logger),
		bank.WithMetrics(a.Metrics),
	}
	if o.onReplenished != nil {
		engineOpts = append(engineOpts, bank.WithOnReplenished(o.onReplenished))
	}
	a.Engine = bank.NewEngine(repo, gen, o.corpus, engineOpts...)

	if err := a.Engine.Load(ctx, cfg.App.Profile); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Store returns the SQLite store, or nil with file storage.
func (a *App) Store() *store.Store { return a.store }

// Close stops background replenishment, waits for runs in flight and
// releases storage.
func (a *App) Close() error {
	if a.Engine != nil {
		a.Engine.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// EnsureReady seeds subject from the corpus when it is below the readiness
// floor and starts a background enrichment. It returns how many corpus
// questions were added.
func (a *App) EnsureReady(subject problemgen.Subject, difficulty int) int {
	if !a.Engine.NeedsSeeding(subject) {
		return 0
	}
	added := a.Engine.QuickSeed(subject)
	a.Engine.EnrichWithAI(subject, difficulty, a.Config.App.GradeLevel)
	return added
}

// RoundResult summarises a played round.
type RoundResult struct {
	Questions    int
	Results      []bool
	Credited     int
	Replenishing bool
	Aborted      bool
}

// Correct counts correct answers.
func (r *RoundResult) Correct() int {
	n := 0
	for _, ok := range r.Results {
		if ok {
			n++
		}
	}
	return n
}

// Play draws a round for subject, runs it in the terminal, records the
// answers and triggers replenishment.
func (a *App) Play(ctx context.Context, subject problemgen.Subject, difficulty int) (*RoundResult, error) {
	difficulty = problemgen.ClampDifficulty(difficulty)
	a.EnsureReady(subject, difficulty)

	drawn := a.Engine.Draw(subject, difficulty, a.Engine.Policy().QuizSize)
	if drawn == nil {
		return nil, fmt.Errorf("%s: %w", subject, ErrNotReady)
	}

	round := quiz.NewRound(subject, drawn)
	runErr := a.runProgram(ctx, round)

	results := round.Results()
	res := &RoundResult{
		Questions: len(drawn),
		Results:   results,
		Aborted:   round.Aborted(),
	}
	if len(results) > 0 {
		res.Credited = a.Engine.RecordResults(subject, drawn[:len(results)], results)
		res.Replenishing = a.Engine.Replenish(subject, difficulty, a.Config.App.GradeLevel, results)
	}

	if runErr != nil {
		return res, fmt.Errorf("run quiz: %w", runErr)
	}
	return res, nil
}

func runTea(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}
