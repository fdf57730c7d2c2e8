// Package journal writes a run's events to the answer journal. Failures
// are logged and swallowed: the drill never depends on the journal.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

// Sources recorded in session events.
const (
	SourceTUI     = "tui"
	SourceConsole = "console"
	SourceHTTP    = "http"
)

// Recorder journals one run. A Recorder with a nil repo does nothing.
type Recorder struct {
	repo      store.EventRepo
	log       *logrus.Entry
	sessionID string
	source    string
	now       func() time.Time

	mu    sync.Mutex
	asked time.Time
}

// NewRecorder creates a Recorder for the run identified by sessionID.
func NewRecorder(repo store.EventRepo, sessionID, source string, log *logrus.Entry) *Recorder {
	return &Recorder{
		repo:      repo,
		log:       log.WithFields(logrus.Fields{"session_id": sessionID, "source": source}),
		sessionID: sessionID,
		source:    source,
		now:       time.Now,
	}
}

// SessionID returns the run identifier.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Start records the beginning of the run and starts the answer timer.
func (r *Recorder) Start(ctx context.Context, snap session.Snapshot) {
	r.mark()
	if r.repo == nil {
		return
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: r.sessionID,
		Action:    "start",
		Source:    r.source,
		Level:     snap.Level,
		Score:     snap.Score,
	})
	if err != nil {
		r.log.WithError(err).Warn("failed to record session start")
	}
}

// Answer records one graded submission. The answer time runs from the
// previous Start, Answer or Lap call.
func (r *Recorder) Answer(ctx context.Context, fb session.Feedback) {
	r.AnswerAfter(ctx, fb, r.Lap())
}

// Lap restarts the answer timer and returns the time since the previous
// Start, Answer or Lap call. Callers that journal in the background take
// the lap when the answer is graded and pass it to AnswerAfter.
func (r *Recorder) Lap() time.Duration {
	return r.mark()
}

// AnswerAfter records one graded submission that took elapsed to answer.
func (r *Recorder) AnswerAfter(ctx context.Context, fb session.Feedback, elapsed time.Duration) {
	if r.repo == nil {
		return
	}
	err := r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     r.sessionID,
		Category:      string(fb.Question.Category),
		Level:         fb.Question.Level,
		QuestionText:  fb.Question.Text,
		CorrectAnswer: fb.Question.Answer.String(),
		LearnerAnswer: fb.Submitted,
		Verdict:       fb.Grade.Kind.String(),
		ScoreAfter:    fb.Snapshot.Score,
		LevelAfter:    fb.Snapshot.Level,
		TimeMs:        elapsed.Milliseconds(),
	})
	if err != nil {
		r.log.WithError(err).Warn("failed to record answer")
	}
}

// End records the end of the run.
func (r *Recorder) End(ctx context.Context, sum *session.Summary) {
	if r.repo == nil || sum == nil {
		return
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         r.sessionID,
		Action:            "end",
		Source:            r.source,
		Level:             sum.Level,
		Score:             sum.Score,
		QuestionsAnswered: sum.Answered,
		CorrectAnswers:    sum.Correct,
		DurationSecs:      int(sum.Duration.Seconds()),
	})
	if err != nil {
		r.log.WithError(err).Warn("failed to record session end")
	}
}

// mark resets the answer timer and returns the time since the last mark.
func (r *Recorder) mark() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	var elapsed time.Duration
	if !r.asked.IsZero() {
		elapsed = now.Sub(r.asked)
	}
	r.asked = now
	return elapsed
}
