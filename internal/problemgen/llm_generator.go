package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/metrics"
)

// LLMGenerator implements Generator using the LLM provider. It makes a
// single provider call per question; retrying transient transport errors
// is the provider stack's job.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// GeneratorOption customises an LLMGenerator.
type GeneratorOption func(*LLMGenerator)

// WithLogger sets the logger used to report rejected questions.
func WithLogger(l zerolog.Logger) GeneratorOption {
	return func(g *LLMGenerator) { g.logger = l.With().Str("component", "problemgen").Logger() }
}

// WithMetrics records validation verdicts on m.
func WithMetrics(m *metrics.Metrics) GeneratorOption {
	return func(g *LLMGenerator) { g.metrics = m }
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, opts ...GeneratorOption) *LLMGenerator {
	g := &LLMGenerator{provider: provider, config: cfg, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Difficulty   int      `json:"difficulty"`
	Topic        string   `json:"topic"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	g.metrics.ProviderCall(err == nil)
	if err != nil {
		g.logger.Debug().Err(err).Str("kind", llm.Classify(err).String()).
			Str("subject", string(input.Subject)).Msg("provider call failed")
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Stage: llm.StageQuestion, Content: resp.Content, Err: err}
	}

	q := &Question{
		Text:         SanitizeText(raw.Question),
		Options:      raw.Options,
		CorrectIndex: raw.CorrectIndex,
		Explanation:  raw.Explanation,
		Difficulty:   raw.Difficulty,
		Subject:      input.Subject,
		GradeLevel:   ClampGrade(input.GradeLevel),
		Topic:        raw.Topic,
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		q.Difficulty = ClampDifficulty(input.Difficulty)
	}
	if q.Topic == "" {
		q.Topic = input.Topic
	}

	claimed := q.CorrectIndex
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			g.logger.Debug().
				Str("validator", verr.Validator).
				Str("subject", string(input.Subject)).
				Str("question", q.Text).
				Msg(verr.Message)
			g.metrics.Rejected(verr.Validator)
			g.metrics.Verdict(string(input.Subject), Rejected.String())
			return nil, verr
		}
	}

	verdict := Accepted
	if q.CorrectIndex != claimed {
		verdict = Corrected
		g.logger.Debug().
			Int("claimed", claimed).
			Int("corrected", q.CorrectIndex).
			Str("question", q.Text).
			Msg("corrected answer index")
	}
	g.metrics.Verdict(string(input.Subject), verdict.String())

	return q, nil
}
