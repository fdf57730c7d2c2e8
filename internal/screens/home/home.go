package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/screen"
	"github.com/luiz1745/jogo-de-matematica/internal/screens/history"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/components"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/theme"
)

const bannerArt = `
   ╦╔═╗╔═╗╔═╗  ╔╦╗╔═╗  ╔╦╗╔═╗╔╦╗╔═╗╔╦╗╔═╗╔╦╗╦╔═╗╔═╗
   ║║ ║║ ╦║ ║   ║║║╣   ║║║╠═╣ ║ ║╣ ║║║╠═╣ ║ ║║  ╠═╣
  ╚╝╚═╝╚═╝╚═╝  ═╩╝╚═╝  ╩ ╩╩ ╩ ╩ ╚═╝╩ ╩╩ ╩ ╩ ╩╚═╝╩ ╩`

const bannerCompact = "J O G O   D E   M A T E M Á T I C A"

// HomeScreen is the start menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. newDrill builds the screen for a fresh run;
// a nil eventRepo disables the history entry.
func New(newDrill func() screen.Screen, eventRepo store.EventRepo) *HomeScreen {
	items := []components.MenuItem{
		{Label: "JOGAR", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newDrill()}
			}
		}},
		{Label: "HISTÓRICO", Disabled: eventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: "SAIR", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Início"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Selecionar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	banner := bannerArt
	if layout.IsCompactWidth(width) {
		banner = bannerCompact
	}

	intro := strings.Join([]string{
		"Responda às perguntas para ganhar 10 pontos por acerto.",
		"A cada 100 perguntas você sobe de nível; errar desce um nível.",
	}, "\n")

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner),
		theme.Subtitle.Render(intro),
		theme.Card.Render(h.menu.View()),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
