package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/components"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/theme"
)

const maxTextWidth = 72

func (s *DrillScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, s.ctrl.Snapshot())
	}

	textWidth := min(width-4, maxTextWidth)
	snap := s.ctrl.Snapshot()
	q := s.ctrl.CurrentQuestion()

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar(fmt.Sprintf("Nível %d", snap.Level),
		snap.QuestionIndex, session.QuestionsPerLevel, textWidth)
	b.WriteString(layout.Center(bar.View(), width))
	b.WriteString("\n\n")

	if s.feedback != nil {
		b.WriteString(layout.Center(renderFeedback(*s.feedback), width))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(q.Category.DisplayName()), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Question.Width(textWidth).Render(q.Text), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(lipgloss.NewStyle().Width(textWidth).Render(s.input.View()), width))
	b.WriteString("\n")

	if extra := s.renderExplanation(textWidth); extra != "" {
		b.WriteString("\n")
		b.WriteString(layout.Center(extra, width))
	}

	return b.String()
}

// renderFeedback renders the grade of the last submission and, when the
// block completed, the level-up banner.
func renderFeedback(fb session.Feedback) string {
	var lines []string
	switch fb.Grade.Kind {
	case session.EventCorrect:
		lines = append(lines, theme.Correct.Render(fb.Grade.Message()))
	case session.EventIncorrect:
		lines = append(lines,
			theme.Incorrect.Render(fb.Grade.Message()),
			theme.Hint.Render("Resposta correta: "+fb.Question.Answer.String()))
	default:
		lines = append(lines, theme.Invalid.Render(fb.Grade.Message()))
	}
	if fb.LevelUp != nil {
		lines = append(lines, "", theme.Banner.Render(fb.LevelUp.Message()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (s *DrillScreen) renderExplanation(width int) string {
	switch {
	case s.explaining:
		return theme.Hint.Render("Gerando explicação...")
	case s.explainErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.explainErr)
	case s.explanation != nil:
		return theme.Card.Width(width).Render(strings.TrimRight(s.explanation.String(), "\n"))
	}
	return ""
}

func renderQuitConfirm(width int, snap session.Snapshot) string {
	lines := []string{
		"",
		"",
		theme.Question.Render("Encerrar o treino?"),
		theme.Subtitle.Render(fmt.Sprintf("Nível %d, %d pontos. O placar não é salvo entre partidas.",
			snap.Level, snap.Score)),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Render("[S] Sim, encerrar"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Não, continuar"),
	}
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, lines...), width)
}
