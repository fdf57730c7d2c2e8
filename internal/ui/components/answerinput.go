package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/ui/theme"
)

// AnswerInput renders the answer being typed. It holds no editing logic of
// its own: the owner filters keystrokes and pushes the accepted text with
// SetText.
type AnswerInput struct {
	Model    textinput.Model
	phrase   bool
	rejected bool
}

// NewAnswerInput creates a focused answer field.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// SetText replaces the displayed answer. phrase marks a fixed answer phrase,
// which is shown highlighted.
func (a *AnswerInput) SetText(text string, phrase bool) {
	a.Model.SetValue(text)
	a.Model.CursorEnd()
	a.phrase = phrase
	a.rejected = false
}

// Reject flags the last keystroke as refused until the next SetText.
func (a *AnswerInput) Reject() {
	a.rejected = true
}

// Rejected reports whether the last keystroke was refused.
func (a AnswerInput) Rejected() bool {
	return a.rejected
}

// View renders the input.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.phrase {
		view = lipgloss.NewStyle().Foreground(theme.Secondary).Render(a.Model.Prompt + a.Model.Value())
	}
	if a.rejected {
		view += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render("✗")
	}
	return view
}

// Value returns the displayed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}
