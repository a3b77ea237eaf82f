// Package quiz implements the terminal quiz round.
package quiz

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/problemgen"
	"github.com/abhisek/quizbank/internal/ui/components"
	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

// Phase is where a round currently is.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseFeedback
	PhaseSummary
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	keyContinue = key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "continue"))
	keyQuit     = key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "quit"))
)

// Round walks the learner through a drawn set of questions, one at a time,
// showing the explanation after each answer and a summary at the end.
type Round struct {
	subject   problemgen.Subject
	questions []bank.BankedQuestion
	idx       int
	choice    components.MultiChoice
	results   []bool
	phase     Phase
	aborted   bool

	width, height int
}

var _ tea.Model = (*Round)(nil)

// NewRound creates a round over questions, which must be non-empty.
func NewRound(subject problemgen.Subject, questions []bank.BankedQuestion) *Round {
	r := &Round{
		subject:   subject,
		questions: questions,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	if len(questions) == 0 {
		r.phase = PhaseSummary
		return r
	}
	r.load(0)
	return r
}

func (r *Round) load(i int) {
	r.idx = i
	q := r.questions[i]
	r.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
}

// Results returns one flag per answered question, in draw order. A round
// quit early yields fewer flags than questions.
func (r *Round) Results() []bool {
	out := make([]bool, len(r.results))
	copy(out, r.results)
	return out
}

// Score returns the number of correct answers so far.
func (r *Round) Score() int {
	n := 0
	for _, ok := range r.results {
		if ok {
			n++
		}
	}
	return n
}

// Phase returns the current phase.
func (r *Round) Phase() Phase { return r.phase }

// Aborted reports whether the learner quit before the summary.
func (r *Round) Aborted() bool { return r.aborted }

func (r *Round) Init() tea.Cmd { return nil }

func (r *Round) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Round) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyQuit) {
		if r.phase != PhaseSummary {
			r.aborted = true
		}
		return r, tea.Quit
	}

	switch r.phase {
	case PhaseAnswering:
		r.choice, _ = r.choice.Update(msg)
		if r.choice.Submitted {
			r.results = append(r.results, r.choice.IsCorrect())
			r.phase = PhaseFeedback
		}
	case PhaseFeedback:
		if !key.Matches(msg, keyContinue) {
			return r, nil
		}
		if r.idx+1 < len(r.questions) {
			r.load(r.idx + 1)
			r.phase = PhaseAnswering
		} else {
			r.phase = PhaseSummary
		}
	case PhaseSummary:
		if key.Matches(msg, keyContinue) {
			return r, tea.Quit
		}
	}
	return r, nil
}

func (r *Round) View() tea.View {
	v := tea.NewView(r.render())
	v.AltScreen = true
	return v
}

func (r *Round) render() string {
	if layout.IsTooSmall(r.width, r.height) {
		return layout.RenderMinSizeMessage(r.width, r.height)
	}

	title := string(r.subject)
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	status := fmt.Sprintf("%d/%d correct", r.Score(), len(r.results))
	header := layout.RenderHeader(title, status, r.width)

	var content string
	var hints []layout.KeyHint
	switch r.phase {
	case PhaseAnswering:
		content = r.renderQuestion()
		hints = append(r.choice.Keys().Hints(), layout.KeyHint{Key: "esc", Description: "quit"})
	case PhaseFeedback:
		content = r.renderQuestion() + "\n" + r.renderFeedback()
		hints = []layout.KeyHint{{Key: "enter", Description: "continue"}, {Key: "esc", Description: "quit"}}
	case PhaseSummary:
		content = r.renderSummary()
		hints = []layout.KeyHint{{Key: "enter", Description: "done"}}
	}

	footer := layout.RenderFooter(hints, r.width)
	return layout.RenderFrame(header, content, footer, r.width, r.height)
}

func (r *Round) renderQuestion() string {
	bar := components.NewProgressBar("Question", r.idx+1, len(r.questions), r.width-4)
	q := r.questions[r.idx]
	meta := theme.Hint.Render(fmt.Sprintf("difficulty %d", q.Difficulty))
	return "\n" + bar.View() + "\n" + meta + "\n\n" +
		lipgloss.NewStyle().Width(r.width-4).Render(r.choice.View())
}

func (r *Round) renderFeedback() string {
	q := r.questions[r.idx]
	var verdict string
	if r.choice.IsCorrect() {
		verdict = theme.Correct.Render("Correct!")
	} else {
		verdict = theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s.", q.Options[q.CorrectIndex]))
	}
	body := verdict
	if q.Explanation != "" {
		body += "\n" + theme.Body.Render(q.Explanation)
	}
	return theme.Card.Width(r.width - 4).Render(body)
}

func (r *Round) renderSummary() string {
	total := len(r.questions)
	score := r.Score()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Round complete"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", score, total)))
	b.WriteString("\n\n")

	for i, q := range r.questions {
		mark := theme.Dimmed.Render("-")
		if i < len(r.results) {
			if r.results[i] {
				mark = theme.Correct.Render("✓")
			} else {
				mark = theme.Incorrect.Render("✗")
			}
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", mark, truncate(q.Text, r.width-12)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 3 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
