package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/screen"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/theme"
)

// answerLimit caps how many journal entries the screen loads.
const answerLimit = 100

type historyLoadedMsg struct {
	Answers []store.AnswerRecord
	Stats   []store.CategoryStats
	Err     error
}

type tab int

const (
	tabAnswers tab = iota
	tabCategories
)

// HistoryScreen displays recent journal entries and per-category accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	answers   []store.AnswerRecord
	stats     []store.CategoryStats
	tab       tab
	offset    int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		answers, err := repo.RecentAnswers(ctx, store.QueryOpts{Limit: answerLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.CategoryStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Answers: answers, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Histórico"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Respostas/Categorias"},
		{Key: "↑↓", Description: "Rolar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.answers = msg.Answers
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			if s.tab == tabAnswers {
				s.tab = tabCategories
			} else {
				s.tab = tabAnswers
			}
			s.offset = 0
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < s.rows()-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabCategories {
		return len(s.stats)
	}
	return len(s.answers)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nErro: %s", s.errMsg)), width)
	}
	if !s.loaded {
		return layout.Center(theme.Hint.Render("\n\nCarregando histórico..."), width)
	}
	if len(s.answers) == 0 {
		return layout.Center(theme.Hint.Render("\n\nNenhuma resposta registrada ainda. Comece a treinar!"), width)
	}

	var lines []string
	if s.tab == tabCategories {
		lines = s.categoryLines()
	} else {
		lines = s.answerLines(width)
	}

	visible := max(height-2, 1)
	end := min(s.offset+visible, len(lines))

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range lines[s.offset:end] {
		b.WriteString(layout.Center(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) answerLines(width int) []string {
	questionWidth := max(min(width-50, 40), 10)

	lines := make([]string, 0, len(s.answers))
	for _, a := range s.answers {
		question := firstLine(a.QuestionText)
		if len([]rune(question)) > questionWidth {
			question = string([]rune(question)[:questionWidth-1]) + "…"
		}
		learner := a.LearnerAnswer
		if learner == "" {
			learner = "(em branco)"
		}

		line := fmt.Sprintf("%s  N%-2d  %-*s  %s → %s",
			a.Timestamp.Format("02/01 15:04"), a.Level, questionWidth, question,
			learner, a.CorrectAnswer)
		lines = append(lines, verdictStyle(a.Verdict).Render(line))
	}
	return lines
}

func (s *HistoryScreen) categoryLines() []string {
	if len(s.stats) == 0 {
		return []string{theme.Hint.Render("Nenhuma resposta avaliada ainda.")}
	}
	lines := make([]string, 0, len(s.stats))
	for _, st := range s.stats {
		name := drill.Category(st.Category).DisplayName()
		line := fmt.Sprintf("%-20s %4d/%-4d %3.0f%%   nível máx. %d",
			name, st.Correct, st.Attempted, st.Accuracy()*100, st.MaxLevel)
		lines = append(lines, theme.Body.Render(line))
	}
	return lines
}

func verdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case session.EventCorrect.String():
		return lipgloss.NewStyle().Foreground(theme.Success)
	case session.EventIncorrect.String():
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
	return lipgloss.NewStyle().Foreground(theme.Warning)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
