package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

type fakeRepo struct {
	answers []store.AnswerRecord
	stats   []store.CategoryStats
	err     error
	opts    store.QueryOpts
}

func (f *fakeRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error     { return nil }
func (f *fakeRepo) AppendSessionEvent(context.Context, store.SessionEventData) error   { return nil }
func (f *fakeRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error { return nil }

func (f *fakeRepo) RecentAnswers(_ context.Context, opts store.QueryOpts) ([]store.AnswerRecord, error) {
	f.opts = opts
	return f.answers, f.err
}

func (f *fakeRepo) CategoryStats(context.Context) ([]store.CategoryStats, error) {
	return f.stats, f.err
}

func testRepo() *fakeRepo {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &fakeRepo{
		answers: []store.AnswerRecord{
			{
				AnswerEventData: store.AnswerEventData{
					SessionID: "s1", Category: "addition", Level: 2,
					QuestionText: "Qual é a soma de 12 + 30?\nFórmula: a + b",
					CorrectAnswer: "42", LearnerAnswer: "41", Verdict: "incorrect",
				},
				Sequence:  2,
				Timestamp: ts,
			},
			{
				AnswerEventData: store.AnswerEventData{
					SessionID: "s1", Category: "quadratic", Level: 1,
					QuestionText: "Resolva a equação quadrática: 1x² + 0x + 1 = 0",
					CorrectAnswer: "Não há solução real", LearnerAnswer: "Não há solução real", Verdict: "correct",
				},
				Sequence:  1,
				Timestamp: ts,
			},
		},
		stats: []store.CategoryStats{
			{Category: "addition", Attempted: 4, Correct: 3, MaxLevel: 2},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected load command from Init")
	}
	s.Update(cmd())
}

func TestHistoryScreen_LoadsAnswers(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(t, s)

	if repo.opts.Limit != answerLimit {
		t.Errorf("query limit = %d, want %d", repo.opts.Limit, answerLimit)
	}

	view := s.View(120, 30)
	for _, want := range []string{"14/03 09:30", "Qual é a soma de 12 + 30?", "41 → 42", "Não há solução real"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Fórmula") {
		t.Error("view should only show the first line of each question")
	}
}

func TestHistoryScreen_CategoryTab(t *testing.T) {
	s := New(testRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	view := s.View(120, 30)
	if !strings.Contains(view, "Adição") || !strings.Contains(view, "75%") {
		t.Errorf("category view missing stats:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)

	if view := s.View(100, 30); !strings.Contains(view, "Nenhuma resposta registrada") {
		t.Errorf("empty view = %q", view)
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("disk on fire")})
	load(t, s)

	if view := s.View(100, 30); !strings.Contains(view, "disk on fire") {
		t.Errorf("error view = %q", view)
	}
}

func TestHistoryScreen_Scroll(t *testing.T) {
	s := New(testRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want 1 (clamped to last row)", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
