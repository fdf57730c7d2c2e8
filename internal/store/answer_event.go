package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() int64 {
	if r.now != nil {
		return r.now().UTC().UnixMilli()
	}
	return time.Now().UTC().UnixMilli()
}

// insert appends one event row, assigning sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, r.timestamp()}, values...)...).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{
			"session_id", "category", "level", "question_text", "correct_answer",
			"learner_answer", "verdict", "score_after", "level_after", "time_ms",
		},
		[]any{
			data.SessionID, data.Category, data.Level, data.QuestionText, data.CorrectAnswer,
			data.LearnerAnswer, data.Verdict, data.ScoreAfter, data.LevelAfter, data.TimeMs,
		},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerRecord, error) {
	sel := builder.Select(
		"sequence", "timestamp", "session_id", "category", "level", "question_text",
		"correct_answer", "learner_answer", "verdict", "score_after", "level_after", "time_ms",
	).From(builder.Table(answerEventsTable))

	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Category != "" {
		sel.Where(entsql.EQ("category", opts.Category))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var (
			rec AnswerRecord
			ts  int64
		)
		err := rows.Scan(
			&rec.Sequence, &ts, &rec.SessionID, &rec.Category, &rec.Level, &rec.QuestionText,
			&rec.CorrectAnswer, &rec.LearnerAnswer, &rec.Verdict, &rec.ScoreAfter, &rec.LevelAfter, &rec.TimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return out, nil
}

func (r *eventRepo) CategoryStats(ctx context.Context) ([]CategoryStats, error) {
	query, args := builder.Select(
		"category",
		entsql.As(entsql.Count("*"), "attempted"),
		entsql.As("SUM(CASE WHEN verdict = 'correct' THEN 1 ELSE 0 END)", "correct"),
		entsql.As(entsql.Max("level"), "max_level"),
	).
		From(builder.Table(answerEventsTable)).
		Where(entsql.NEQ("verdict", "invalid")).
		GroupBy("category").
		OrderBy("category").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var cs CategoryStats
		if err := rows.Scan(&cs.Category, &cs.Attempted, &cs.Correct, &cs.MaxLevel); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category stats: %w", err)
	}
	return out, nil
}
