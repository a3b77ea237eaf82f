package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizbank",
	Short: "Adaptive multiple-choice quizzes for kids",
	Long: `quizbank keeps a per-learner bank of vetted multiple-choice questions in
math, science, reading and social studies. Questions come from an LLM when one
is configured and from a built-in corpus otherwise; every answer feeds back into
difficulty and replenishment.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", ".env", "Load environment variables from this file if it exists")
	pf.String("db", "", "Path to SQLite database file (overrides QUIZBANK_DB)")
	pf.String("profile", "", "Learner profile whose bank is used (overrides QUIZBANK_PROFILE)")
	pf.String("storage", "", "Snapshot storage: sqlite or file (overrides QUIZBANK_STORAGE)")
	pf.String("log-level", "", "Log level (overrides QUIZBANK_LOG_LEVEL)")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
