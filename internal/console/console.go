// Package console runs the drill as a line-oriented REPL.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/journal"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
)

const prompt = "> "

// LineReader is the subset of *readline.Instance the console uses.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Config wires a Console.
type Config struct {
	Controller *session.Controller
	Recorder   *journal.Recorder
	Explainer  *explain.Service
	Out        io.Writer
	Log        *logrus.Entry
}

// Console drives one run from typed lines.
type Console struct {
	ctrl     *session.Controller
	rec      *journal.Recorder
	explain  *explain.Service
	out      io.Writer
	log      *logrus.Entry
	lastMiss *session.Feedback
}

// New creates a Console.
func New(cfg Config) *Console {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	rec := cfg.Recorder
	if rec == nil {
		rec = journal.NewRecorder(nil, "", journal.SourceConsole, log)
	}
	return &Console{
		ctrl:    cfg.Controller,
		rec:     rec,
		explain: cfg.Explainer,
		out:     out,
		log:     log,
	}
}

// NewReadline creates a readline instance with slash-command completion
// and history kept under dataDir. An empty dataDir disables history.
func NewReadline(dataDir string) (*readline.Instance, error) {
	var historyFile string
	if dataDir != "" {
		historyFile = filepath.Join(dataDir, "console_history")
		_ = os.MkdirAll(dataDir, 0o755)
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("/ajuda"),
		readline.PcItem("/sair"),
		readline.PcItem("/explicar"),
		readline.PcItem("/real"),
		readline.PcItem("/unica"),
		readline.PcItem("/placar"),
	)

	return readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		HistoryLimit:      500,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "/sair",
		HistorySearchFold: true,
	})
}

// Run reads lines until /sair or EOF and prints the run summary.
func (c *Console) Run(ctx context.Context, rl LineReader) error {
	defer rl.Close()

	c.rec.Start(ctx, c.ctrl.Snapshot())
	c.printHelp()
	c.printQuestion()

	for {
		if ctx.Err() != nil {
			break
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				fmt.Fprintln(c.out, "Use /sair ou Ctrl+D para encerrar.")
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if quit := c.Handle(ctx, line); quit {
			break
		}
	}

	sum := c.ctrl.BuildSummary()
	c.rec.End(ctx, sum)
	c.printSummary(sum)
	return nil
}

// Handle processes one input line and reports whether the run should end.
// A blank line is graded as an invalid answer.
func (c *Console) Handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if strings.HasPrefix(input, "/") {
		return c.command(ctx, input)
	}
	c.submit(ctx, input)
	return false
}

func (c *Console) command(ctx context.Context, input string) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/sair", "/quit":
		return true
	case "/ajuda", "/help":
		c.printHelp()
	case "/placar":
		c.printSnapshot()
	case "/explicar", "/explain":
		c.explainLastMiss(ctx)
	case "/real":
		c.submit(ctx, drill.PhraseNoRealSolution)
	case "/unica":
		c.submit(ctx, drill.PhraseNoUniqueSolution)
	default:
		fmt.Fprintf(c.out, "Comando desconhecido: %s (digite /ajuda)\n", input)
	}
	return false
}

func (c *Console) submit(ctx context.Context, answer string) {
	fb := c.ctrl.Submit(answer)
	c.rec.Answer(ctx, fb)
	if fb.Missed() {
		c.lastMiss = &fb
	}

	fmt.Fprintln(c.out, fb.Grade.Message())
	if fb.Grade.Kind == session.EventIncorrect {
		fmt.Fprintf(c.out, "Resposta correta: %s\n", fb.Question.Answer.String())
		if c.explain.Available() {
			fmt.Fprintln(c.out, "Digite /explicar para ver a resolução.")
		}
	}
	if fb.LevelUp != nil {
		fmt.Fprintln(c.out, fb.LevelUp.Message())
	}
	fmt.Fprintln(c.out)
	c.printQuestion()
}

func (c *Console) explainLastMiss(ctx context.Context) {
	if !c.explain.Available() {
		fmt.Fprintln(c.out, "Explicações indisponíveis: nenhum provedor de IA configurado.")
		return
	}
	if c.lastMiss == nil {
		fmt.Fprintln(c.out, "Nenhuma questão errada para explicar ainda.")
		return
	}

	fmt.Fprintln(c.out, "Gerando explicação...")
	exp, err := c.explain.Explain(ctx, explain.Input{
		Question:  c.lastMiss.Question,
		Submitted: c.lastMiss.Submitted,
	})
	if err != nil {
		c.log.WithError(err).Warn("explanation failed")
		if errors.Is(err, llm.ErrNoProvider) {
			fmt.Fprintln(c.out, "Explicações indisponíveis.")
		} else {
			fmt.Fprintln(c.out, "Não foi possível gerar a explicação agora.")
		}
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, exp.String())
	fmt.Fprintln(c.out)
	c.printQuestion()
}

func (c *Console) printQuestion() {
	snap := c.ctrl.Snapshot()
	fmt.Fprintf(c.out, "Nível %d | Pontos %d | Questão %d/%d\n",
		snap.Level, snap.Score, snap.QuestionIndex, session.QuestionsPerLevel)
	fmt.Fprintln(c.out, c.ctrl.CurrentQuestionText())
}

func (c *Console) printSnapshot() {
	snap := c.ctrl.Snapshot()
	fmt.Fprintf(c.out, "Nível %d, %d pontos, %d respostas (%d corretas)\n",
		snap.Level, snap.Score, snap.Answered, snap.Correct)
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Digite a resposta e pressione Enter. Várias respostas: separe por vírgula.
  /real      responde "`+drill.PhraseNoRealSolution+`"
  /unica     responde "`+drill.PhraseNoUniqueSolution+`"
  /explicar  explica a última questão errada
  /placar    mostra nível e pontos
  /sair      encerra

`)
}

func (c *Console) printSummary(sum *session.Summary) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Fim de jogo!")
	fmt.Fprintf(c.out, "Nível final: %d\n", sum.Level)
	fmt.Fprintf(c.out, "Pontuação: %d\n", sum.Score)
	fmt.Fprintf(c.out, "Respostas: %d (%d corretas, %d inválidas)\n", sum.Answered, sum.Correct, sum.Invalid)
	if sum.Answered > sum.Invalid {
		fmt.Fprintf(c.out, "Precisão: %.0f%%\n", sum.Accuracy*100)
	}
	for _, cs := range sum.CategoryStats {
		fmt.Fprintf(c.out, "  %-16s %d/%d\n", cs.Category, cs.Correct, cs.Attempted)
	}
}
