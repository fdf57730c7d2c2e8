// Package drill is the TUI screen that runs one drill session.
package drill

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	dr "github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/router"
	"github.com/luiz1745/jogo-de-matematica/internal/screen"
	"github.com/luiz1745/jogo-de-matematica/internal/screens/summary"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/components"
	"github.com/luiz1745/jogo-de-matematica/internal/ui/layout"
)

const answerCharLimit = 64

// DrillScreen implements screen.Screen for a live run.
type DrillScreen struct {
	ctrl      *session.Controller
	rec       *journal.Recorder
	explainer *explain.Service
	input     components.AnswerInput

	// feedback is the result of the last submission, shown above the
	// next question.
	feedback *session.Feedback

	// lastMiss is the most recent incorrect submission, the one ctrl+e
	// explains.
	lastMiss    *session.Feedback
	explanation *explain.Explanation
	explaining  bool
	explainErr  string

	confirmQuit bool

	// journaled closes when the most recent journal write finishes.
	journaled chan struct{}
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.EscapeHandler = (*DrillScreen)(nil)

// New creates a DrillScreen over a fresh controller. rec and explainer may
// be nil.
func New(ctrl *session.Controller, rec *journal.Recorder, explainer *explain.Service) *DrillScreen {
	return &DrillScreen{
		ctrl:      ctrl,
		rec:       rec,
		explainer: explainer,
		input:     components.NewAnswerInput("Digite sua resposta...", answerCharLimit),
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	if s.rec == nil {
		return s.input.Init()
	}
	rec := s.rec
	snap := s.ctrl.Snapshot()
	return tea.Batch(
		s.input.Init(),
		s.journal(func() {
			rec.Start(context.Background(), snap)
		}),
	)
}

func (s *DrillScreen) Title() string {
	return "Treino"
}

func (s *DrillScreen) Status() layout.Status {
	snap := s.ctrl.Snapshot()
	return layout.Status{Level: snap.Level, Score: snap.Score}
}

func (s *DrillScreen) HandlesEscape() bool {
	return true
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "S", Description: "Encerrar"},
			{Key: "N", Description: "Continuar"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Responder"},
		{Key: "R", Description: dr.PhraseNoRealSolution},
		{Key: "U", Description: dr.PhraseNoUniqueSolution},
	}
	if s.canExplain() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Explicar"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Sair"})
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		return s.handleExplanation(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input.Model, cmd = s.input.Model.Update(msg)
	return s, cmd
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "s", "S", "y", "Y":
			return s, s.end()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	buf := s.ctrl.Input()
	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submit()
	case "backspace":
		buf.Backspace()
	case "r", "R":
		buf.SetPhrase(dr.PhraseNoRealSolution)
	case "u", "U":
		buf.SetPhrase(dr.PhraseNoUniqueSolution)
	case "ctrl+e":
		return s, s.requestExplanation()
	default:
		runes := []rune(key)
		if len(runes) != 1 {
			return s, nil
		}
		if !buf.Apply(runes[0]) {
			s.input.Reject()
			return s, nil
		}
	}

	s.input.SetText(buf.String(), buf.IsPhrase())
	return s, nil
}

// submit grades the buffer and journals the result in the background. An
// empty buffer is graded too and counts as an invalid answer.
func (s *DrillScreen) submit() (screen.Screen, tea.Cmd) {
	fb := s.ctrl.SubmitInput()
	s.feedback = &fb
	s.input.SetText("", false)

	if fb.Missed() {
		s.lastMiss = &fb
		s.explanation = nil
		s.explaining = false
		s.explainErr = ""
	}

	if s.rec == nil {
		return s, nil
	}
	rec := s.rec
	elapsed := rec.Lap()
	return s, s.journal(func() {
		rec.AnswerAfter(context.Background(), fb, elapsed)
	})
}

// journal returns a command that runs write after every earlier journal
// write has finished, so events land in the order they happened.
func (s *DrillScreen) journal(write func()) tea.Cmd {
	prev := s.journaled
	done := make(chan struct{})
	s.journaled = done
	return func() tea.Msg {
		if prev != nil {
			<-prev
		}
		write()
		close(done)
		return nil
	}
}

// end records the end of the run and replaces this screen with its summary.
func (s *DrillScreen) end() tea.Cmd {
	sum := s.ctrl.BuildSummary()
	replace := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
	if s.rec == nil {
		return replace
	}
	rec := s.rec
	return tea.Batch(
		s.journal(func() {
			rec.End(context.Background(), sum)
		}),
		replace,
	)
}

func (s *DrillScreen) canExplain() bool {
	return s.lastMiss != nil && s.explainer.Available()
}

func (s *DrillScreen) requestExplanation() tea.Cmd {
	if s.lastMiss == nil {
		s.explainErr = "Nenhuma resposta errada para explicar ainda."
		return nil
	}
	if !s.explainer.Available() {
		s.explainErr = "Explicações indisponíveis: nenhum provedor de IA configurado."
		return nil
	}
	if s.explaining || s.explanation != nil {
		return nil
	}

	s.explaining = true
	s.explainErr = ""

	svc := s.explainer
	miss := *s.lastMiss
	return func() tea.Msg {
		exp, err := svc.Explain(context.Background(), explain.Input{
			Question:  miss.Question,
			Submitted: miss.Submitted,
		})
		return explanationMsg{Question: miss.Question.Text, Explanation: exp, Err: err}
	}
}

func (s *DrillScreen) handleExplanation(msg explanationMsg) (screen.Screen, tea.Cmd) {
	if s.lastMiss == nil || s.lastMiss.Question.Text != msg.Question {
		return s, nil
	}
	s.explaining = false
	if msg.Err != nil {
		s.explainErr = explainErrorText(msg.Err)
		return s, nil
	}
	s.explanation = msg.Explanation
	return s, nil
}

func explainErrorText(err error) string {
	var rateErr *llm.ErrRateLimit
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		return "Explicações indisponíveis: nenhum provedor de IA configurado."
	case errors.As(err, &rateErr):
		return "O provedor de IA está ocupado. Tente de novo em instantes."
	case errors.Is(err, context.DeadlineExceeded):
		return "A explicação demorou demais. Tente de novo."
	}
	return "Não foi possível gerar a explicação."
}
