package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	updates int
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

func TestNavigation(t *testing.T) {
	home := &fakeScreen{name: "home"}
	drill := &fakeScreen{name: "drill"}
	summary := &fakeScreen{name: "summary"}

	tests := []struct {
		name      string
		msgs      []tea.Msg
		wantTop   string
		wantDepth int
	}{
		{"initial", nil, "home", 1},
		{"push", []tea.Msg{PushScreenMsg{Screen: drill}}, "drill", 2},
		{"push then pop", []tea.Msg{PushScreenMsg{Screen: drill}, PopScreenMsg{}}, "home", 1},
		{"pop at root", []tea.Msg{PopScreenMsg{}, PopScreenMsg{}}, "home", 1},
		{"replace root", []tea.Msg{ReplaceScreenMsg{Screen: summary}}, "summary", 1},
		{
			"drill ends in summary",
			[]tea.Msg{PushScreenMsg{Screen: drill}, ReplaceScreenMsg{Screen: summary}},
			"summary", 2,
		},
		{
			"leaving summary returns home",
			[]tea.Msg{PushScreenMsg{Screen: drill}, ReplaceScreenMsg{Screen: summary}, PopScreenMsg{}},
			"home", 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(home)
			for _, msg := range tc.msgs {
				r.Update(msg)
			}
			if got := r.Active().Title(); got != tc.wantTop {
				t.Errorf("active = %q, want %q", got, tc.wantTop)
			}
			if got := r.Depth(); got != tc.wantDepth {
				t.Errorf("depth = %d, want %d", got, tc.wantDepth)
			}
			if got := r.View(80, 24); got != tc.wantTop {
				t.Errorf("view = %q, want %q", got, tc.wantTop)
			}
		})
	}
}

func TestNewScreensAreInitialised(t *testing.T) {
	drill := &fakeScreen{name: "drill"}
	summary := &fakeScreen{name: "summary"}

	r := New(&fakeScreen{name: "home"})
	r.Update(PushScreenMsg{Screen: drill})
	r.Update(ReplaceScreenMsg{Screen: summary})

	if drill.inits != 1 {
		t.Errorf("pushed screen Init ran %d times, want 1", drill.inits)
	}
	if summary.inits != 1 {
		t.Errorf("replacing screen Init ran %d times, want 1", summary.inits)
	}
}

func TestOtherMessagesReachOnlyActiveScreen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	drill := &fakeScreen{name: "drill"}

	r := New(home)
	r.Update(PushScreenMsg{Screen: drill})
	r.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if drill.updates != 2 {
		t.Errorf("active screen got %d updates, want 2", drill.updates)
	}
	if home.updates != 0 {
		t.Errorf("covered screen got %d updates, want 0", home.updates)
	}
}
