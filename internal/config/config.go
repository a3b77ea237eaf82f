// Package config loads quizbank's runtime configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/store"
)

// Storage backends for bank snapshots.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config is the full runtime configuration. Every variable carries the
// QUIZBANK_ prefix, e.g. QUIZBANK_BANK_MIN_READY.
type Config struct {
	App    App
	Bank   bank.Policy `envPrefix:"BANK_"`
	LLM    llm.Config
	Server Server
}

// App holds process-wide settings.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"quizbank"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Profile selects whose bank is active.
	Profile string `env:"PROFILE" envDefault:"default"`

	// GradeLevel is the learner's school grade, used to pitch generated
	// questions.
	GradeLevel int `env:"GRADE" envDefault:"4"`

	// Storage is "sqlite" (one database, snapshots in a table) or "file"
	// (one JSON file per profile under DataDir/banks).
	Storage string `env:"STORAGE" envDefault:"sqlite"`
	DataDir string `env:"DATA_DIR"`
	DBPath  string `env:"DB"`
}

// Server configures `quizbank serve`.
type Server struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads envFile into the process environment if it exists, then
// parses QUIZBANK_* variables. Variables already set win over the file.
// An empty envFile skips the file step.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: llm.EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.LLM = cfg.LLM.WithDiscovery()

	if cfg.App.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.App.DataDir = dir
	}
	if cfg.App.DBPath == "" {
		cfg.App.DBPath = filepath.Join(cfg.App.DataDir, "quizbank.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.App.Storage {
	case StorageSQLite, StorageFile:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q (want %s or %s)", c.App.Storage, StorageSQLite, StorageFile))
	}
	if c.App.GradeLevel < problemgen.MinGrade || c.App.GradeLevel > problemgen.MaxGrade {
		errs = append(errs, fmt.Errorf("grade %d out of range %d-%d", c.App.GradeLevel, problemgen.MinGrade, problemgen.MaxGrade))
	}
	if !store.ValidProfileID(c.App.Profile) {
		errs = append(errs, fmt.Errorf("invalid profile %q", c.App.Profile))
	}
	if err := c.Bank.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bank policy: %w", err))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SnapshotDir is where the file backend keeps per-profile snapshots.
func (c *Config) SnapshotDir() string {
	return filepath.Join(c.App.DataDir, "banks")
}

// EnsureDataDir creates the data directory.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.App.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
