package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Duration: 12*time.Minute + 5*time.Second,
		Level:    3,
		Score:    110,
		Answered: 16,
		Correct:  11,
		Invalid:  2,
		Accuracy: float64(11) / float64(14),
		CategoryStats: []session.CategoryResult{
			{Category: drill.CategoryAddition, Attempted: 6, Correct: 6},
			{Category: drill.CategoryQuadratic, Attempted: 8, Correct: 5},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Resumo" {
		t.Errorf("Title = %q, want %q", s.Title(), "Resumo")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 30)

	for _, want := range []string{"Treino encerrado!", "12:05", "Pontos: 110", "11/14", "Adição", "Equação quadrática", "2 respostas inválidas"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if view := s.View(80, 24); view != "" {
		t.Errorf("nil summary view = %q, want empty", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary())
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a command", key.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("%s: expected PopScreenMsg", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
