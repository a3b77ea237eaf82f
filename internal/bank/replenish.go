package bank

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/problemgen"
)

// Report summarises one replenishment run.
type Report struct {
	Subject    problemgen.Subject
	Difficulty int
	Pruned     int
	Deficit    int
	Generated  int
	FromCorpus int
	Took       time.Duration
}

// Short reports whether the run ended below target capacity.
func (r Report) Short() bool {
	return r.Generated+r.FromCorpus < r.Deficit
}

// AdaptDifficulty moves current one step up or down based on the fraction
// of correct answers in results. No results keeps the difficulty.
func AdaptDifficulty(current int, results []bool, p Policy) int {
	if len(results) == 0 {
		return problemgen.ClampDifficulty(current)
	}
	accuracy := float64(lo.Count(results, true)) / float64(len(results))
	switch {
	case accuracy >= p.IncreaseAt:
		current++
	case accuracy <= p.DecreaseAt:
		current--
	}
	return problemgen.ClampDifficulty(current)
}

// replenish runs one pass: prune, compute the deficit, generate, fall back
// to the corpus, then stamp and persist. It never fails; a short run is
// retried after the next quiz.
func (e *Engine) replenish(ctx context.Context, subject problemgen.Subject, target, gradeLevel int) Report {
	start := time.Now()
	report := Report{Subject: subject, Difficulty: target}
	log := e.logger.With().Str("subject", string(subject)).Int("difficulty", target).Logger()

	report.Pruned = e.bank.Prune(subject)
	e.metrics.Prune(string(subject), report.Pruned)

	report.Deficit = e.policy.TargetCapacity - e.bank.Size(subject)
	if report.Deficit <= 0 {
		e.persist(ctx)
		report.Took = time.Since(start)
		log.Debug().Int("pruned", report.Pruned).Msg("bank at capacity")
		return report
	}

	report.Generated = e.generate(ctx, subject, target, gradeLevel, report.Deficit)
	e.metrics.Added(string(subject), string(SourceGenerated), report.Generated)

	if remaining := report.Deficit - report.Generated; remaining > 0 {
		report.FromCorpus = e.fillFromCorpus(subject, target, remaining)
		e.metrics.Added(string(subject), string(SourceCorpus), report.FromCorpus)
	}

	e.bank.MarkReplenished(subject)
	e.persist(ctx)

	report.Took = time.Since(start)
	e.metrics.ReplenishTook(string(subject), report.Took)
	log.Info().
		Int("pruned", report.Pruned).
		Int("deficit", report.Deficit).
		Int("generated", report.Generated).
		Int("corpus", report.FromCorpus).
		Dur("took", report.Took).
		Msg("replenished")
	return report
}

// generate asks the provider for up to need questions within BatchLimit
// attempts. Failed attempts are skipped; errors that no retry can fix end
// the batch early.
func (e *Engine) generate(ctx context.Context, subject problemgen.Subject, difficulty, gradeLevel, need int) int {
	if e.gen == nil {
		return 0
	}

	added := 0
	for attempt := 0; attempt < e.policy.BatchLimit && added < need; attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.Debug().Err(err).Msg("replenish budget exhausted")
			break
		}

		q, err := e.gen.Generate(ctx, problemgen.GenerateInput{
			Subject:        subject,
			GradeLevel:     gradeLevel,
			Difficulty:     difficulty,
			PriorQuestions: e.bank.Texts(subject),
		})
		if err != nil {
			switch llm.Classify(err) {
			case llm.KindNotConfigured, llm.KindInvalidCredential, llm.KindCanceled:
				e.logger.Debug().Err(err).Int("attempt", attempt).Msg("stopping generation")
				return added
			}
			continue
		}
		if e.bank.Add(subject, SourceGenerated, *q) {
			added++
		}
	}
	return added
}

// fillFromCorpus adds up to need corpus questions, nearest difficulty
// first.
func (e *Engine) fillFromCorpus(subject problemgen.Subject, difficulty, need int) int {
	if e.corpus == nil {
		return 0
	}
	added := 0
	for _, d := range difficultyOrder(difficulty) {
		for _, q := range e.corpus.QuestionsFor(subject, d) {
			if added == need {
				return added
			}
			if e.bank.Add(subject, SourceCorpus, q) {
				added++
			}
		}
	}
	return added
}

// difficultyOrder lists every difficulty by distance from target, lower
// first on ties.
func difficultyOrder(target int) []int {
	target = problemgen.ClampDifficulty(target)
	order := []int{target}
	for step := 1; len(order) < problemgen.MaxDifficulty-problemgen.MinDifficulty+1; step++ {
		if d := target - step; d >= problemgen.MinDifficulty {
			order = append(order, d)
		}
		if d := target + step; d <= problemgen.MaxDifficulty {
			order = append(order, d)
		}
	}
	return order
}
