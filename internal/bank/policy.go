package bank

import (
	"errors"
	"fmt"
	"time"
)

// Policy holds the tunable thresholds of the bank. Field tags let the
// config package load it straight from the environment.
type Policy struct {
	// QuizSize is how many questions a round draws.
	QuizSize int `env:"QUIZ_SIZE" envDefault:"5"`

	// MinReady is the quiz-readiness floor: Draw fails below it.
	MinReady int `env:"MIN_READY" envDefault:"10"`

	// TargetCapacity is the size replenishment aims for.
	TargetCapacity int `env:"TARGET_CAPACITY" envDefault:"30"`

	// A question is mastered once shown at least MasteryMinShown times
	// with a correct rate of at least MasteryRate.
	MasteryMinShown int     `env:"MASTERY_MIN_SHOWN" envDefault:"3"`
	MasteryRate     float64 `env:"MASTERY_RATE" envDefault:"0.8"`

	// RecentWindow bounds the per-subject recently-shown list.
	RecentWindow int `env:"RECENT_WINDOW" envDefault:"15"`

	// StaleAfter is how long a mastered question must go unseen before
	// it may be pruned.
	StaleAfter time.Duration `env:"STALE_AFTER" envDefault:"336h"`

	// BatchLimit caps provider attempts per replenishment run.
	BatchLimit int `env:"BATCH_LIMIT" envDefault:"8"`

	// Accuracy thresholds for moving the target difficulty up or down.
	IncreaseAt float64 `env:"INCREASE_AT" envDefault:"0.8"`
	DecreaseAt float64 `env:"DECREASE_AT" envDefault:"0.4"`

	// GenerateRate paces provider calls (per second) across subjects.
	GenerateRate  float64 `env:"GENERATE_RATE" envDefault:"2"`
	GenerateBurst int     `env:"GENERATE_BURST" envDefault:"1"`

	// ReplenishTimeout bounds a single background run. Zero disables it.
	ReplenishTimeout time.Duration `env:"REPLENISH_TIMEOUT" envDefault:"2m"`
}

// DefaultPolicy returns the same values the environment loader defaults to.
func DefaultPolicy() Policy {
	return Policy{
		QuizSize:         5,
		MinReady:         10,
		TargetCapacity:   30,
		MasteryMinShown:  3,
		MasteryRate:      0.8,
		RecentWindow:     15,
		StaleAfter:       14 * 24 * time.Hour,
		BatchLimit:       8,
		IncreaseAt:       0.8,
		DecreaseAt:       0.4,
		GenerateRate:     2,
		GenerateBurst:    1,
		ReplenishTimeout: 2 * time.Minute,
	}
}

// PruneFloor is the size pruning never goes below.
func (p Policy) PruneFloor() int {
	return 2 * p.MinReady
}

// Validate rejects policies the bank cannot operate under.
func (p Policy) Validate() error {
	var errs []error
	if p.QuizSize <= 0 {
		errs = append(errs, fmt.Errorf("quiz size must be positive, got %d", p.QuizSize))
	}
	if p.MinReady < p.QuizSize {
		errs = append(errs, fmt.Errorf("min ready (%d) must be at least the quiz size (%d)", p.MinReady, p.QuizSize))
	}
	if p.TargetCapacity < p.MinReady {
		errs = append(errs, fmt.Errorf("target capacity (%d) must be at least min ready (%d)", p.TargetCapacity, p.MinReady))
	}
	if p.MasteryRate <= 0 || p.MasteryRate > 1 {
		errs = append(errs, fmt.Errorf("mastery rate must be in (0,1], got %g", p.MasteryRate))
	}
	if p.DecreaseAt >= p.IncreaseAt {
		errs = append(errs, fmt.Errorf("decrease threshold (%g) must be below increase threshold (%g)", p.DecreaseAt, p.IncreaseAt))
	}
	if p.RecentWindow < 0 || p.BatchLimit < 0 {
		errs = append(errs, errors.New("recent window and batch limit must not be negative"))
	}
	return errors.Join(errs...)
}
