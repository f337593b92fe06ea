package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/infra/postgres"
)

// ResultRepository stores finished quiz passes and per-chat aggregates.
type ResultRepository struct {
	db postgres.DBTX
	tx *postgres.Transactor
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db postgres.DBTX, tx *postgres.Transactor) *ResultRepository {
	return &ResultRepository{db: db, tx: tx}
}

// Save inserts the result and folds it into the chat aggregate in one transaction.
func (r *ResultRepository) Save(ctx context.Context, result *entities.QuizResult) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insert := `
			INSERT INTO quiz_results (id, chat_id, score, total, completed_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, insert,
			result.ID.String(),
			result.ChatID,
			result.Score,
			result.Total,
			result.CompletedAt,
		); err != nil {
			return fmt.Errorf("insert quiz result: %w", err)
		}

		upsert := `
			INSERT INTO chat_stats (
				chat_id, passes, best_score, best_total,
				last_score, last_total, last_played_at
			) VALUES ($1, 1, $2, $3, $2, $3, $4)
			ON CONFLICT (chat_id) DO UPDATE SET
				passes         = chat_stats.passes + 1,
				best_score     = GREATEST(chat_stats.best_score, EXCLUDED.best_score),
				best_total     = CASE WHEN EXCLUDED.best_score > chat_stats.best_score
				                      THEN EXCLUDED.best_total ELSE chat_stats.best_total END,
				last_score     = EXCLUDED.last_score,
				last_total     = EXCLUDED.last_total,
				last_played_at = EXCLUDED.last_played_at
		`
		if _, err := tx.Exec(ctx, upsert,
			result.ChatID,
			result.Score,
			result.Total,
			result.CompletedAt,
		); err != nil {
			return fmt.Errorf("upsert chat stats: %w", err)
		}

		return nil
	})
}

// GetStats returns the aggregate of the chat. A chat without finished passes
// gets empty stats.
func (r *ResultRepository) GetStats(ctx context.Context, chatID int64) (*entities.ChatStats, error) {
	query := `
		SELECT passes, best_score, best_total, last_score, last_total, last_played_at
		FROM chat_stats
		WHERE chat_id = $1
	`

	stats := entities.ChatStats{ChatID: chatID}
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&stats.Passes,
		&stats.BestScore,
		&stats.BestTotal,
		&stats.LastScore,
		&stats.LastTotal,
		&stats.LastPlayedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &stats, nil
		}
		return nil, fmt.Errorf("get chat stats: %w", err)
	}

	return &stats, nil
}

// Recent returns up to limit latest results of the chat, newest first.
func (r *ResultRepository) Recent(ctx context.Context, chatID int64, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT id, chat_id, score, total, completed_at
		FROM quiz_results
		WHERE chat_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}
	defer rows.Close()

	var results []entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(&res.ID, &res.ChatID, &res.Score, &res.Total, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
