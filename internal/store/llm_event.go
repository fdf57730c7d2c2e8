package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	err := r.insert(ctx, llmEventsTable,
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, success, data.ErrorMessage,
		},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMRequestRecord is an LLMRequestEventData read back from the journal.
type LLMRequestRecord struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// RecentLLMRequests returns LLM request events newest first. purpose, when
// non-empty, filters by request purpose.
func (s *Store) RecentLLMRequests(ctx context.Context, limit int, purpose string) ([]LLMRequestRecord, error) {
	sel := builder.Select(
		"sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
		"output_tokens", "latency_ms", "success", "error_message",
	).From(builder.Table(llmEventsTable))
	if purpose != "" {
		sel.Where(entsql.EQ("purpose", purpose))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var (
			rec     LLMRequestRecord
			ts      int64
			success int
		)
		err := rows.Scan(
			&rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens,
			&rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		rec.Success = success == 1
		rec.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM requests: %w", err)
	}
	return out, nil
}
