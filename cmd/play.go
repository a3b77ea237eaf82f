package cmd

import (
	"errors"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/app"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz round in the terminal",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("subject", "s", string(problemgen.SubjectMath), "Subject: "+subjectList())
	cmd.Flags().IntP("difficulty", "d", 2, "Preferred difficulty (1-5)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	subjectVal, _ := cmd.Flags().GetString("subject")
	difficulty, _ := cmd.Flags().GetInt("difficulty")

	subject, err := problemgen.ParseSubject(subjectVal)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Play(cmd.Context(), subject, difficulty)
	if errors.Is(err, app.ErrNotReady) {
		return fmt.Errorf("%w: the %s bank has fewer than %d questions", err, subject, a.Engine.Policy().MinReady)
	}
	if res != nil {
		printRoundResult(res)
	}
	if err != nil {
		return err
	}

	if res.Replenishing {
		fmt.Println(theme.Hint.Render("Topping up the question bank..."))
	}
	return nil
}

func printRoundResult(res *app.RoundResult) {
	answered := len(res.Results)
	if answered == 0 {
		fmt.Println(theme.Hint.Render("No questions answered."))
		return
	}

	style := theme.Correct
	if res.Correct()*2 < answered {
		style = theme.Warning
	}
	line := style.Render(fmt.Sprintf("%d/%d correct", res.Correct(), answered))
	if res.Aborted {
		line += theme.Dimmed.Render(fmt.Sprintf("  (stopped after %d of %d)", answered, res.Questions))
	}
	fmt.Println(lipgloss.NewStyle().MarginTop(1).Render(line))
}
