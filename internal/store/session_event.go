package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{
			"session_id", "action", "source", "level", "score",
			"questions_answered", "correct_answers", "duration_secs",
		},
		[]any{
			data.SessionID, data.Action, data.Source, data.Level, data.Score,
			data.QuestionsAnswered, data.CorrectAnswers, data.DurationSecs,
		},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}
