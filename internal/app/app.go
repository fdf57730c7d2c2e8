package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/logging"
	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/screen"
	drillscreen "github.com/luiz1745/jogo-de-matematica/internal/screens/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/screens/home"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	// NewGenerator returns the question generator for a new run.
	NewGenerator func() *drill.Generator

	// EventRepo is the answer journal. Nil disables journaling and the
	// history screen.
	EventRepo store.EventRepo

	// Explainer may be nil or unavailable; ctrl+e then reports that
	// explanations are disabled.
	Explainer *explain.Service

	Log *logrus.Entry
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	newDrill := func() screen.Screen {
		id := uuid.NewString()
		ctrl := session.New(opts.NewGenerator(), session.WithLogger(log.WithField("session_id", id)))
		rec := journal.NewRecorder(opts.EventRepo, id, journal.SourceTUI, log)
		return drillscreen.New(ctrl, rec, opts.Explainer)
	}
	return AppModel{
		router: router.New(home.New(newDrill, opts.EventRepo)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var (
		title  string
		status layout.Status
		hints  []layout.KeyHint
	)
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Voltar"},
			{Key: "Ctrl+C", Description: "Sair"},
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
