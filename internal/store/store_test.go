package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testAnswer(session, category, verdict string, level int) AnswerEventData {
	return AnswerEventData{
		SessionID:     session,
		Category:      category,
		Level:         level,
		QuestionText:  "Qual é a soma de 3 + 4?",
		CorrectAnswer: "7",
		LearnerAnswer: "7",
		Verdict:       verdict,
		ScoreAfter:    10,
		LevelAfter:    level,
		TimeMs:        1200,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{answerEventsTable, sessionEventsTable, llmEventsTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestFreshDatabaseAcceptsEveryEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	repo := s.EventRepo()
	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Action: "start", Source: "tui", Level: 1,
	}); err != nil {
		t.Fatalf("append session event: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, testAnswer("s1", "addition", "correct", 1)); err != nil {
		t.Fatalf("append answer event: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "explain", Success: true,
	}); err != nil {
		t.Fatalf("append LLM request: %v", err)
	}

	for _, table := range []string{answerEventsTable, sessionEventsTable, llmEventsTable} {
		var n int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("%s has %d rows, want 1", table, n)
		}
	}

	var indexes int
	err = s.DB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name LIKE '%_events_%' AND name NOT LIKE 'sqlite_%'").Scan(&indexes)
	if err != nil {
		t.Fatalf("count indexes: %v", err)
	}
	if indexes != 4 {
		t.Errorf("found %d event indexes, want 4", indexes)
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendAnswerEvent(ctx, testAnswer("s1", "addition", "correct", 1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	repo := s.EventRepo()
	if err := repo.AppendAnswerEvent(ctx, testAnswer("s1", "addition", "correct", 1)); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	got, err := repo.RecentAnswers(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("answers = %d, want 2", len(got))
	}
	if got[0].Sequence != 2 || got[1].Sequence != 1 {
		t.Errorf("sequences = %d, %d, want 2, 1", got[0].Sequence, got[1].Sequence)
	}
}

func TestAnswerEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &eventRepo{drv: s.drv, seq: s.seq, now: func() time.Time { return fixed }}

	want := testAnswer("sess-1", "quadratic", "incorrect", 4)
	want.CorrectAnswer = "1.00 e -2.00"
	want.LearnerAnswer = "1, 2"
	if err := repo.AppendAnswerEvent(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.RecentAnswers(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("answers = %d, want 1", len(got))
	}
	if got[0].AnswerEventData != want {
		t.Errorf("data = %+v, want %+v", got[0].AnswerEventData, want)
	}
	if !got[0].Timestamp.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, fixed)
	}
}

func TestRecentAnswersFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		session := "a"
		if i%2 == 1 {
			session = "b"
		}
		category := "addition"
		if i >= 4 {
			category = "geometry"
		}
		if err := repo.AppendAnswerEvent(ctx, testAnswer(session, category, "correct", 1)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"all", QueryOpts{}, []int64{6, 5, 4, 3, 2, 1}},
		{"limit", QueryOpts{Limit: 2}, []int64{6, 5}},
		{"session", QueryOpts{SessionID: "a"}, []int64{5, 3, 1}},
		{"category", QueryOpts{Category: "geometry"}, []int64{6, 5}},
		{"after", QueryOpts{After: 4}, []int64{6, 5}},
		{"combined", QueryOpts{SessionID: "b", Category: "addition"}, []int64{4, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.RecentAnswers(ctx, tt.opts)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d answers, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Sequence != tt.want[i] {
					t.Errorf("answer[%d].Sequence = %d, want %d", i, rec.Sequence, tt.want[i])
				}
			}
		})
	}
}

func TestCategoryStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AnswerEventData{
		testAnswer("s", "addition", "correct", 1),
		testAnswer("s", "addition", "incorrect", 3),
		testAnswer("s", "addition", "invalid", 9),
		testAnswer("s", "division", "correct", 2),
	}
	for _, e := range events {
		if err := repo.AppendAnswerEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.CategoryStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := []CategoryStats{
		{Category: "addition", Attempted: 2, Correct: 1, MaxLevel: 3},
		{Category: "division", Attempted: 1, Correct: 1, MaxLevel: 2},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
	if acc := stats[0].Accuracy(); acc != 0.5 {
		t.Errorf("addition accuracy = %v, want 0.5", acc)
	}
}

func TestCategoryStatsEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().CategoryStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("stats = %+v, want none", stats)
	}
	if (CategoryStats{}).Accuracy() != 0 {
		t.Error("accuracy of empty stats should be 0")
	}
}

func TestSessionAndLLMEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s", Action: "start", Source: "tui", Level: 1}); err != nil {
		t.Fatalf("session start: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, testAnswer("s", "addition", "correct", 1)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "explain", Success: false, ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("llm: %v", err)
	}

	var answerSeq, llmSeq int64
	var success int
	var msg string
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatalf("query answer: %v", err)
	}
	if err := s.DB().QueryRow("SELECT sequence, success, error_message FROM llm_request_events").Scan(&llmSeq, &success, &msg); err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if answerSeq != 2 || llmSeq != 3 {
		t.Errorf("sequences = %d, %d, want 2, 3", answerSeq, llmSeq)
	}
	if success != 0 || msg != "boom" {
		t.Errorf("success/msg = %d/%q", success, msg)
	}
}

func TestRecentLLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explain", InputTokens: 120, OutputTokens: 80, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "other", Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explain", Success: false, ErrorMessage: "timeout"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.RecentLLMRequests(ctx, 10, "explain")
	if err != nil {
		t.Fatalf("RecentLLMRequests: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Success || got[0].ErrorMessage != "timeout" {
		t.Errorf("newest record = %+v, want the failed request", got[0])
	}
	if !got[1].Success || got[1].InputTokens != 120 || got[1].LatencyMs != 900 {
		t.Errorf("oldest record = %+v", got[1])
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("records not newest first: %d, %d", got[0].Sequence, got[1].Sequence)
	}

	all, err := s.RecentLLMRequests(ctx, 1, "")
	if err != nil {
		t.Fatalf("RecentLLMRequests: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("limit ignored: got %d records", len(all))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("JOGO_DB", filepath.Join(dir, "env", "custom.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "env", "custom.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("JOGO_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "jogo", "jogo.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}

func BenchmarkAppendAnswer(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; b.Loop(); i++ {
		if err := repo.AppendAnswerEvent(ctx, testAnswer(fmt.Sprint(i%4), "addition", "correct", 1)); err != nil {
			b.Fatal(err)
		}
	}
}
