package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a subject (no bank)",
	Long: `Generate vetted questions and answer them at the prompt.

Nothing is banked. Every question goes through the same structural, topic and
answer checks the bank applies, so this is the quickest way to judge question
quality for a provider, model or grade.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("subject", "s", string(problemgen.SubjectMath), "Subject: "+subjectList())
	previewCmd.Flags().String("topic", "", "Optional topic, e.g. fractions")
	previewCmd.Flags().Int("grade", -1, "Grade level 0-8 (default from QUIZBANK_GRADE)")
	previewCmd.Flags().IntP("difficulty", "d", 2, "Difficulty 1-5")
	previewCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subjectVal, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	grade, _ := cmd.Flags().GetInt("grade")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	subject, err := problemgen.ParseSubject(subjectVal)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if grade < 0 {
		grade = cfg.App.GradeLevel
	}
	logger := newLogger(cfg)

	// No EventRepo: previews are not recorded.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, logger)
	if errors.Is(err, llm.ErrNotConfigured) {
		return fmt.Errorf("preview needs an LLM provider: set %sLLM_PROVIDER and its API key", llm.EnvPrefix)
	}
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := problemgen.New(provider, problemgen.DefaultConfig(), problemgen.WithLogger(logger))
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Subject: %s  Grade %d  Difficulty %d", subject, grade, difficulty)
	if topic != "" {
		fmt.Printf("  Topic: %s", topic)
	}
	fmt.Printf("\nGenerating %d questions...\n\n", count)

	var correct, asked int
	var priorQuestions []string

	for i := 1; i <= count; i++ {
		q := problemgen.Vetted(ctx, gen, problemgen.GenerateInput{
			Subject:        subject,
			Topic:          topic,
			GradeLevel:     grade,
			Difficulty:     difficulty,
			PriorQuestions: priorQuestions,
		})
		if q == nil {
			fmt.Println(theme.Warning.Render(fmt.Sprintf("Question %d: generation failed or was rejected", i)))
			fmt.Println()
			continue
		}
		priorQuestions = append(priorQuestions, q.Text)

		fmt.Printf("── Question %d/%d ──\n", i, count)
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			fmt.Printf("  %c) %s\n", 'A'+j, opt)
		}

		fmt.Print("\nYour answer (A-D or 1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice, ok := parseChoice(scanner.Text(), len(q.Options))
		if !ok {
			fmt.Print("(skipped)\n\n")
			continue
		}

		asked++
		if choice == q.CorrectIndex {
			correct++
			fmt.Println(theme.Correct.Render("✓ Correct!"))
		} else {
			fmt.Println(theme.Incorrect.Render("✗ Wrong.") + " Answer: " + q.Options[q.CorrectIndex])
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// parseChoice accepts a letter (a-d) or a 1-based number.
func parseChoice(s string, n int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if len(s) == 1 && s[0] >= 'a' && int(s[0]-'a') < n {
		return int(s[0] - 'a'), true
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 1 && i <= n {
		return i - 1, true
	}
	return 0, false
}
