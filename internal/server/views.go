package server

import (
	"time"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/session"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

type questionView struct {
	Category drill.Category `json:"category"`
	Level    int            `json:"level"`
	Text     string         `json:"text"`
}

func newQuestionView(q drill.Question) questionView {
	return questionView{Category: q.Category, Level: q.Level, Text: q.Text}
}

type sessionView struct {
	ID       string           `json:"id"`
	Question questionView     `json:"question"`
	Snapshot session.Snapshot `json:"snapshot"`
}

type eventView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Points  int    `json:"points,omitempty"`
	Level   int    `json:"level"`
}

func newEventView(e session.Event) eventView {
	return eventView{Kind: e.Kind.String(), Message: e.Message(), Points: e.Points, Level: e.Level}
}

type feedbackView struct {
	Verdict       eventView        `json:"verdict"`
	LevelUp       *eventView       `json:"level_up,omitempty"`
	Submitted     string           `json:"submitted"`
	CorrectAnswer string           `json:"correct_answer"`
	Next          questionView     `json:"next_question"`
	Snapshot      session.Snapshot `json:"snapshot"`
}

func newFeedbackView(fb session.Feedback, next drill.Question) feedbackView {
	v := feedbackView{
		Verdict:       newEventView(fb.Grade),
		Submitted:     fb.Submitted,
		CorrectAnswer: fb.Question.Answer.String(),
		Next:          newQuestionView(next),
		Snapshot:      fb.Snapshot,
	}
	if fb.LevelUp != nil {
		lu := newEventView(*fb.LevelUp)
		v.LevelUp = &lu
	}
	return v
}

type summaryView struct {
	DurationSecs int     `json:"duration_secs"`
	Level        int     `json:"level"`
	Score        int     `json:"score"`
	Answered     int     `json:"answered"`
	Correct      int     `json:"correct"`
	Invalid      int     `json:"invalid"`
	Accuracy     float64 `json:"accuracy"`
}

func newSummaryView(s *session.Summary) summaryView {
	return summaryView{
		DurationSecs: int(s.Duration.Seconds()),
		Level:        s.Level,
		Score:        s.Score,
		Answered:     s.Answered,
		Correct:      s.Correct,
		Invalid:      s.Invalid,
		Accuracy:     s.Accuracy,
	}
}

type answerRecordView struct {
	Sequence      int64     `json:"sequence"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	Category      string    `json:"category"`
	Level         int       `json:"level"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correct_answer"`
	LearnerAnswer string    `json:"learner_answer"`
	Verdict       string    `json:"verdict"`
	TimeMs        int64     `json:"time_ms"`
}

func newAnswerRecordView(r store.AnswerRecord) answerRecordView {
	return answerRecordView{
		Sequence:      r.Sequence,
		Timestamp:     r.Timestamp,
		SessionID:     r.SessionID,
		Category:      r.Category,
		Level:         r.Level,
		Question:      r.QuestionText,
		CorrectAnswer: r.CorrectAnswer,
		LearnerAnswer: r.LearnerAnswer,
		Verdict:       r.Verdict,
		TimeMs:        r.TimeMs,
	}
}

type errorView struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
