package service

import (
	"context"
	"time"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/quiz"
)

// CatalogSource provides the loaded station catalog.
type CatalogSource interface {
	Catalog() (*entities.Catalog, error)
}

// SessionStorage keeps one quiz session per chat.
type SessionStorage interface {
	Store(chatID int64, session *quiz.Session)
	Get(chatID int64) (*quiz.Session, bool)
	Delete(chatID int64)
	EvictIdle(before time.Time) int
}

// ResultRepository persists finished passes.
type ResultRepository interface {
	Save(ctx context.Context, result *entities.QuizResult) error
	GetStats(ctx context.Context, chatID int64) (*entities.ChatStats, error)
	Recent(ctx context.Context, chatID int64, limit int) ([]entities.QuizResult, error)
}
