package session

import (
	"time"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

// QuestionsPerLevel is the length of a question block. Completing a block
// raises the level by one.
const QuestionsPerLevel = 100

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 10

// Phase represents where the controller is in the question cycle.
type Phase int

const (
	PhaseAwaitingQuestion Phase = iota // No live question; next one is being generated
	PhaseQuestionLive                  // A question is waiting for an answer
	PhaseGrading                       // A submission is being graded
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting-question"
	case PhaseQuestionLive:
		return "question-live"
	case PhaseGrading:
		return "grading"
	default:
		return "unknown"
	}
}

// State is the run state owned by a Controller.
type State struct {
	// Level is the current difficulty, always in [drill.MinLevel, drill.MaxLevel].
	Level int

	// Score only grows, in steps of PointsPerCorrect.
	Score int

	// QuestionIndex counts questions generated in the current block, in
	// [0, QuestionsPerLevel).
	QuestionIndex int

	// Phase is the current phase of the question cycle.
	Phase Phase

	// Answered is the number of graded submissions, including invalid ones.
	Answered int

	// Correct is the number of correct submissions.
	Correct int

	// Invalid is the number of submissions that did not parse.
	Invalid int

	// StartTime is when the run began.
	StartTime time.Time

	// PerCategory tracks results per question category for the summary.
	PerCategory map[drill.Category]*CategoryResult
}

// CategoryResult tracks per-category performance within a run.
type CategoryResult struct {
	Category  drill.Category
	Attempted int
	Correct   int
}

// Snapshot is a read-only copy of the state for display.
type Snapshot struct {
	Level         int    `json:"level"`
	Score         int    `json:"score"`
	QuestionIndex int    `json:"question_index"`
	Phase         string `json:"phase"`
	Answered      int    `json:"answered"`
	Correct       int    `json:"correct"`
}

func newState(now time.Time) State {
	return State{
		Level:       drill.MinLevel,
		Phase:       PhaseAwaitingQuestion,
		StartTime:   now,
		PerCategory: make(map[drill.Category]*CategoryResult),
	}
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Level:         s.Level,
		Score:         s.Score,
		QuestionIndex: s.QuestionIndex,
		Phase:         s.Phase.String(),
		Answered:      s.Answered,
		Correct:       s.Correct,
	}
}
