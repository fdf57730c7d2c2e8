package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/screen"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/theme"
)

// SummaryScreen displays the end-of-run summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumo"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "Esc", Description: "Início"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Title.Render("Treino encerrado!"), width))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Center(theme.Subtitle.Render(
		fmt.Sprintf("Duração: %d:%02d", mins, secs)), width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Nível final: %d      Pontos: %d      Acertos: %d/%d (%.0f%%)",
		sum.Level, sum.Score, sum.Correct, sum.Answered-sum.Invalid, sum.Accuracy*100)
	b.WriteString(layout.Center(theme.Body.Render(stats), width))
	b.WriteString("\n")
	if sum.Invalid > 0 {
		b.WriteString(layout.Center(theme.Hint.Render(
			fmt.Sprintf("%d respostas inválidas não contaram.", sum.Invalid)), width))
		b.WriteString("\n")
	}

	if len(sum.CategoryStats) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Subtitle.Render("Por categoria"), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(divider, width))
	b.WriteString("\n\n")

	for _, cr := range sum.CategoryStats {
		line := fmt.Sprintf("%-20s %3d/%-3d", cr.Category.DisplayName(), cr.Correct, cr.Attempted)
		style := theme.Body
		if cr.Attempted > 0 && cr.Correct == cr.Attempted {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")
	}

	return b.String()
}
