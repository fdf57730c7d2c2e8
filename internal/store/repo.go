package store

import (
	"context"
	"time"
)

// QueryOpts configures answer queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only answers from this session
	Category  string // only answers of this category
	After     int64  // sequence > After
}

// AnswerEventData captures one graded submission.
type AnswerEventData struct {
	SessionID     string
	Category      string
	Level         int
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Verdict       string
	ScoreAfter    int
	LevelAfter    int
	TimeMs        int64
}

// AnswerRecord is an AnswerEventData read back from the journal.
type AnswerRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData marks the start or end of a run.
type SessionEventData struct {
	SessionID         string
	Action            string // "start" or "end"
	Source            string // "tui", "console" or "http"
	Level             int
	Score             int
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CategoryStats aggregates graded answers for one question category.
// Invalid submissions are not counted.
type CategoryStats struct {
	Category  string
	Attempted int
	Correct   int
	MaxLevel  int
}

// Accuracy returns Correct/Attempted, or 0 when nothing was attempted.
func (c CategoryStats) Accuracy() float64 {
	if c.Attempted == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Attempted)
}

// EventRepo provides append and query access to the journal. The journal is
// an audit log; nothing in it is used to restore a run.
type EventRepo interface {
	// AppendAnswerEvent records a graded submission.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records the start or end of a run.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAnswers returns answers newest first.
	RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerRecord, error)

	// CategoryStats aggregates graded answers per category.
	CategoryStats(ctx context.Context) ([]CategoryStats, error)
}
