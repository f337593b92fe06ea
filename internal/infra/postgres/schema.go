package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the result tables when they are missing.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS quiz_results (
  id           UUID PRIMARY KEY,
  chat_id      BIGINT NOT NULL,
  score        INTEGER NOT NULL,
  total        INTEGER NOT NULL,
  completed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS quiz_results_chat_id_idx ON quiz_results (chat_id, completed_at DESC);

CREATE TABLE IF NOT EXISTS chat_stats (
  chat_id        BIGINT PRIMARY KEY,
  passes         INTEGER NOT NULL DEFAULT 0,
  best_score     INTEGER NOT NULL DEFAULT 0,
  best_total     INTEGER NOT NULL DEFAULT 0,
  last_score     INTEGER NOT NULL DEFAULT 0,
  last_total     INTEGER NOT NULL DEFAULT 0,
  last_played_at TIMESTAMPTZ NOT NULL
);
`
