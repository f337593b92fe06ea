package telegram

import (
	"context"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

type QuizService interface {
	Start(ctx context.Context, chatID int64) (*entities.Question, error)
	Current(ctx context.Context, chatID int64) (*entities.Question, error)
	Answer(ctx context.Context, chatID int64, position, optionIndex int) (*entities.AnswerResult, error)
	Advance(ctx context.Context, chatID int64, position int) (*entities.Question, *entities.Completion, error)
	Stats(ctx context.Context, chatID int64) (*entities.ChatStats, error)
}

type CatalogProvider interface {
	Catalog() (*entities.Catalog, error)
}

type QuestionMessages interface {
	Swap(chatID int64, messageID int) (prev int, hadPrev bool)
}
