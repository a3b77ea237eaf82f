package problemgen

import "context"

// Generator produces questions from an external provider.
type Generator interface {
	// Generate produces a single question for the given input context.
	// Returns a validated Question or an error.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Vetted asks gen for one question and returns it only if it survived
// every check. Provider failures and rejections both yield nil; a nil
// generator (offline mode) always does.
func Vetted(ctx context.Context, gen Generator, input GenerateInput) *Question {
	if gen == nil {
		return nil
	}
	q, err := gen.Generate(ctx, input)
	if err != nil {
		return nil
	}
	return q
}
