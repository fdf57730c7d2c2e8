package session

import (
	"fmt"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
)

// EventKind identifies a feedback event.
type EventKind int

const (
	EventCorrect EventKind = iota + 1
	EventIncorrect
	EventInvalidAnswer
	EventLevelUp
)

func (k EventKind) String() string {
	switch k {
	case EventCorrect:
		return "correct"
	case EventIncorrect:
		return "incorrect"
	case EventInvalidAnswer:
		return "invalid"
	case EventLevelUp:
		return "level-up"
	default:
		return "unknown"
	}
}

// Event is a single signal for the shell to display.
type Event struct {
	Kind EventKind `json:"kind"`

	// Points awarded; PointsPerCorrect for EventCorrect, otherwise 0.
	Points int `json:"points"`

	// Level after the event was applied.
	Level int `json:"level"`
}

// Message returns the learner-facing line for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventCorrect:
		return fmt.Sprintf("Correto! +%d Pontos", e.Points)
	case EventIncorrect:
		return "Incorreto. Tente novamente!"
	case EventInvalidAnswer:
		return "Resposta inválida. Tente novamente!"
	case EventLevelUp:
		return fmt.Sprintf("Parabéns! Você avançou para o nível %d.", e.Level)
	}
	return ""
}

// Feedback is the result of one Submit call.
type Feedback struct {
	// Grade is the Correct, Incorrect or InvalidAnswer event.
	Grade Event

	// LevelUp is set when generating the next question completed a block
	// and raised the level.
	LevelUp *Event

	// Question is the question that was graded.
	Question drill.Question

	// Submitted is the raw text that was graded.
	Submitted string

	// Snapshot is the state after grading and after the next question was
	// generated.
	Snapshot Snapshot
}

// Events returns the grade event followed by the level-up event, if any.
func (f Feedback) Events() []Event {
	events := []Event{f.Grade}
	if f.LevelUp != nil {
		events = append(events, *f.LevelUp)
	}
	return events
}

// Missed reports whether the submission parsed but was wrong.
func (f Feedback) Missed() bool {
	return f.Grade.Kind == EventIncorrect
}
