package session

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

// Controller owns the run state and the single live question. It is
// synchronous and performs no I/O beyond debug logging. A Controller is not
// safe for concurrent use.
type Controller struct {
	gen     *drill.Generator
	state   State
	current drill.Question
	input   InputBuffer
	log     *logrus.Entry
	now     func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for level transitions.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a Controller at level 1 with score 0 and generates the first
// question.
func New(gen *drill.Generator, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		gen: gen,
		log: logrus.NewEntry(discard),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = newState(c.now())
	c.nextQuestion()
	return c
}

// CurrentQuestion returns the live question.
func (c *Controller) CurrentQuestion() drill.Question {
	return c.current
}

// CurrentQuestionText returns the text of the live question.
func (c *Controller) CurrentQuestionText() string {
	return c.current.Text
}

// Snapshot returns a copy of the run state.
func (c *Controller) Snapshot() Snapshot {
	return c.state.snapshot()
}

// Input returns the keystroke buffer for the live question.
func (c *Controller) Input() *InputBuffer {
	return &c.input
}

// SubmitInput grades the current contents of the input buffer.
func (c *Controller) SubmitInput() Feedback {
	return c.Submit(c.input.String())
}

// Submit grades raw against the live question, applies score and level
// changes, clears the input buffer and generates the next question.
// Malformed input yields an EventInvalidAnswer grade.
func (c *Controller) Submit(raw string) Feedback {
	s := &c.state
	s.Phase = PhaseGrading

	q := c.current
	verdict := drill.Grade(raw, q.Answer)
	s.Answered++

	var grade Event
	switch verdict {
	case drill.VerdictCorrect:
		s.Score += PointsPerCorrect
		s.Correct++
		c.recordCategory(q.Category, true)
		grade = Event{Kind: EventCorrect, Points: PointsPerCorrect, Level: s.Level}

	case drill.VerdictIncorrect:
		if s.Level > drill.MinLevel {
			s.Level--
			c.log.WithFields(logrus.Fields{
				"level":    s.Level,
				"category": q.Category,
			}).Debug("level decreased after incorrect answer")
		}
		c.recordCategory(q.Category, false)
		grade = Event{Kind: EventIncorrect, Level: s.Level}

	default:
		s.Invalid++
		grade = Event{Kind: EventInvalidAnswer, Level: s.Level}
	}

	c.input.Clear()
	c.current = drill.Question{}
	s.Phase = PhaseAwaitingQuestion
	levelUp := c.nextQuestion()

	return Feedback{
		Grade:     grade,
		LevelUp:   levelUp,
		Question:  q,
		Submitted: raw,
		Snapshot:  s.snapshot(),
	}
}

// nextQuestion generates a question at the current level and advances the
// block counter. It returns a level-up event when the block completes below
// the maximum level.
func (c *Controller) nextQuestion() *Event {
	s := &c.state
	c.current = c.gen.Generate(s.Level)
	s.QuestionIndex++

	var levelUp *Event
	if s.QuestionIndex >= QuestionsPerLevel {
		s.QuestionIndex = 0
		if s.Level < drill.MaxLevel {
			s.Level++
			levelUp = &Event{Kind: EventLevelUp, Level: s.Level}
			c.log.WithField("level", s.Level).Debug("level increased after completing block")
		}
	}

	s.Phase = PhaseQuestionLive
	return levelUp
}

func (c *Controller) recordCategory(cat drill.Category, correct bool) {
	r, ok := c.state.PerCategory[cat]
	if !ok {
		r = &CategoryResult{Category: cat}
		c.state.PerCategory[cat] = r
	}
	r.Attempted++
	if correct {
		r.Correct++
	}
}
