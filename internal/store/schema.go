package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	answerEventsTable  = "answer_events"
	sessionEventsTable = "session_events"
	llmEventsTable     = "llm_request_events"
)

// builder renders every query for the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// Every event table starts with a global sequence number and a UTC
// timestamp in Unix milliseconds.
const eventColumns = `
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence  INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,`

// schema holds the DDL run on open, in order. Every statement is
// idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + answerEventsTable + ` (` + eventColumns + `
	session_id     TEXT    NOT NULL,
	category       TEXT    NOT NULL,
	level          INTEGER NOT NULL,
	question_text  TEXT    NOT NULL,
	correct_answer TEXT    NOT NULL,
	learner_answer TEXT    NOT NULL,
	verdict        TEXT    NOT NULL,
	score_after    INTEGER NOT NULL,
	level_after    INTEGER NOT NULL,
	time_ms        INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + sessionEventsTable + ` (` + eventColumns + `
	session_id         TEXT    NOT NULL,
	action             TEXT    NOT NULL,
	source             TEXT    NOT NULL,
	level              INTEGER NOT NULL,
	score              INTEGER NOT NULL,
	questions_answered INTEGER NOT NULL DEFAULT 0,
	correct_answers    INTEGER NOT NULL DEFAULT 0,
	duration_secs      INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + llmEventsTable + ` (` + eventColumns + `
	provider      TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	purpose       TEXT    NOT NULL,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms    INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL,
	error_message TEXT    NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session_id ON ` + answerEventsTable + ` (session_id)`,
	`CREATE INDEX IF NOT EXISTS answer_events_category ON ` + answerEventsTable + ` (category)`,
	`CREATE INDEX IF NOT EXISTS answer_events_timestamp ON ` + answerEventsTable + ` (timestamp)`,
	`CREATE INDEX IF NOT EXISTS session_events_session_id ON ` + sessionEventsTable + ` (session_id)`,
}

// migrate creates the event tables and their indexes if they do not exist.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		var res sql.Result
		if err := drv.Exec(ctx, stmt, []any{}, &res); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}
