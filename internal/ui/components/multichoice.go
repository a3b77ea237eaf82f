package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbank/internal/ui/layout"
	"github.com/abhisek/quizbank/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// ChoiceKeyMap holds the bindings a MultiChoice reacts to.
type ChoiceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Submit key.Binding
	Pick   []key.Binding
}

// DefaultChoiceKeys binds arrows/jk for movement, enter to submit, and
// 1-4 or a-d to answer directly.
func DefaultChoiceKeys() ChoiceKeyMap {
	km := ChoiceKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
	}
	for i, label := range optionLabels {
		km.Pick = append(km.Pick, key.NewBinding(
			key.WithKeys(fmt.Sprint(i+1), strings.ToLower(label)),
			key.WithHelp(fmt.Sprintf("%d/%s", i+1, strings.ToLower(label)), "pick"),
		))
	}
	return km
}

// Hints returns footer hints for the bindings.
func (km ChoiceKeyMap) Hints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: km.Up.Help().Key + " " + km.Down.Help().Key, Description: "move"},
		{Key: km.Submit.Help().Key, Description: km.Submit.Help().Desc},
	}
	if len(km.Pick) > 0 {
		hints = append(hints, layout.KeyHint{Key: "1-4/a-d", Description: "pick"})
	}
	return hints
}

// MultiChoice is a multiple-choice selector component.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int

	keys ChoiceKeyMap
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
		keys:         DefaultChoiceKeys(),
	}
}

// Keys returns the component's bindings.
func (m MultiChoice) Keys() ChoiceKeyMap { return m.keys }

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.keys.Submit):
		m.submit(m.Selected)
	default:
		for i, b := range m.keys.Pick {
			if i < len(m.Options) && key.Matches(kmsg, b) {
				m.Selected = i
				m.submit(i)
				break
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the question and its options. After submission the correct
// option is highlighted green and a wrong pick red.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			line = theme.Correct.Render(line)
		case m.Submitted && i == m.ChosenIndex:
			line = theme.Incorrect.Render(line)
		case m.Submitted:
			line = theme.Dimmed.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
