package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/app"
	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and maintain a profile's question bank",
}

var bankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-subject bank size, mastery and sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(renderStats(a.Engine.ProfileID(), a.Engine.Policy(), a.Engine.Stats()))
		return nil
	},
}

var bankSeedCmd = &cobra.Command{
	Use:   "seed [subject...]",
	Short: "Fill subjects from the built-in corpus up to the quiz-readiness floor",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		subjects, err := subjectsFromArgs(args, all)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, s := range subjects {
			added := a.Engine.QuickSeed(s)
			fmt.Printf("%-8s  +%d from corpus\n", s, added)
		}
		return nil
	},
}

var bankEnrichCmd = &cobra.Command{
	Use:   "enrich [subject...]",
	Short: "Replenish subjects towards target capacity and wait for the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		subjects, err := subjectsFromArgs(args, all)
		if err != nil {
			return err
		}

		var (
			mu      sync.Mutex
			reports []bank.Report
		)
		a, err := openApp(cmd, app.WithOnReplenished(func(r bank.Report) {
			mu.Lock()
			defer mu.Unlock()
			reports = append(reports, r)
		}))
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.Engine.Online() {
			fmt.Println(theme.Hint.Render("No LLM provider configured; enriching from the built-in corpus only."))
		}
		for _, s := range subjects {
			a.Engine.QuickSeed(s)
			a.Engine.EnrichWithAI(s, difficulty, a.Config.App.GradeLevel)
		}
		a.Engine.Wait()

		mu.Lock()
		defer mu.Unlock()
		sort.Slice(reports, func(i, j int) bool { return reports[i].Subject < reports[j].Subject })
		for _, r := range reports {
			line := fmt.Sprintf("%-8s  d%d  +%d generated  +%d corpus  -%d pruned  (%s)",
				r.Subject, r.Difficulty, r.Generated, r.FromCorpus, r.Pruned, r.Took.Round(time.Millisecond))
			if r.Short() {
				line = theme.Warning.Render(line + "  short of target")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var bankResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every banked question of the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		profile := a.Engine.ProfileID()
		if !yes {
			fmt.Printf("Delete the question bank of profile %q? [y/N] ", profile)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := a.Engine.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Bank of profile %q reset.\n", profile)
		return nil
	},
}

func init() {
	bankSeedCmd.Flags().Bool("all", false, "Seed every subject")
	bankEnrichCmd.Flags().Bool("all", false, "Enrich every subject")
	bankEnrichCmd.Flags().IntP("difficulty", "d", 2, "Target difficulty (1-5)")
	bankResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	bankCmd.AddCommand(bankStatsCmd)
	bankCmd.AddCommand(bankSeedCmd)
	bankCmd.AddCommand(bankEnrichCmd)
	bankCmd.AddCommand(bankResetCmd)
}

// renderStats formats Engine.Stats as a styled table.
func renderStats(profile string, p bank.Policy, stats []bank.SubjectStats) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	cell := lipgloss.NewStyle().Width(10)
	wide := lipgloss.NewStyle().Width(22)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Question bank") + theme.Dimmed.Render("  profile "+profile) + "\n\n")

	b.WriteString(header.Render(
		cell.Render("Subject") + cell.Render("Size") + cell.Render("Mastered") +
			wide.Render("By difficulty 1..5") + wide.Render("Sources") + "Last replenished"))
	b.WriteString("\n")

	for _, st := range stats {
		size := fmt.Sprintf("%d/%d", st.Size, p.TargetCapacity)
		sizeStyle := theme.Correct
		if !st.Ready(p) {
			sizeStyle = theme.Warning
		}

		var diffs []string
		for d := problemgen.MinDifficulty; d <= problemgen.MaxDifficulty; d++ {
			diffs = append(diffs, fmt.Sprint(st.ByDifficulty[d]))
		}
		sources := fmt.Sprintf("ai %d / corpus %d", st.BySource[bank.SourceGenerated], st.BySource[bank.SourceCorpus])

		last := "never"
		if !st.LastReplenished.IsZero() {
			last = st.LastReplenished.Local().Format(time.DateTime)
		}
		if st.Replenishing {
			last += " (running)"
		}

		b.WriteString(cell.Render(string(st.Subject)) +
			cell.Render(sizeStyle.Render(size)) +
			cell.Render(fmt.Sprint(st.Mastered)) +
			wide.Render(strings.Join(diffs, " ")) +
			wide.Render(sources) +
			theme.Dimmed.Render(last))
		b.WriteString("\n")
	}
	return b.String()
}
