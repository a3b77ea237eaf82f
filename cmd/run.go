package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/app"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/problemgen"
)

// loadConfig reads the environment (and --env-file), then applies the
// persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	overridden := false
	override := func(flag string, dst *string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
			overridden = true
		}
	}
	override("db", &cfg.App.DBPath)
	override("profile", &cfg.App.Profile)
	override("storage", &cfg.App.Storage)
	override("log-level", &cfg.App.LogLevel)

	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)
}

// openApp loads configuration and assembles the app. Callers must Close it.
func openApp(cmd *cobra.Command, opts ...app.Option) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	a, err := app.New(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", cfg.App.Name, err)
	}
	return a, nil
}

// subjectsFromArgs resolves the subject arguments, or every subject when
// all is set.
func subjectsFromArgs(args []string, all bool) ([]problemgen.Subject, error) {
	if all {
		return problemgen.Subjects, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("name a subject (%s) or pass --all", subjectList())
	}
	out := make([]problemgen.Subject, 0, len(args))
	for _, arg := range args {
		s, err := problemgen.ParseSubject(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func subjectList() string {
	return strings.Join(lo.Map(problemgen.Subjects, func(s problemgen.Subject, _ int) string { return string(s) }), ", ")
}
