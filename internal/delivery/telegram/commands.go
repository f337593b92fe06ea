package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/catalog"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/service"
)

// handleStart greets the chat and starts the first pass.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, formatWelcome())); err != nil {
			return err
		}
		return h.startQuiz(ctx, chatID)
	}
}

// handleQuiz starts a new pass, dropping the current one.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.startQuiz(ctx, chatID)
	}
}

func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := h.quizService.Current(ctx, chatID)
		if errors.Is(err, service.ErrNoActiveSession) {
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		}
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatScore(q))
		msg.ReplyMarkup = buildRestartKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, chatID)
		if errors.Is(err, service.ErrStatsDisabled) {
			return h.send(newPlainMessage(chatID, msgStatsDisabled))
		}
		if err != nil {
			return err
		}
		return h.send(newMessage(chatID, formatStats(stats)))
	}
}

func (h *Handler) handleStations() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		c, err := h.catalog.Catalog()
		if err != nil {
			if text, ok := catalogUnavailableText(err); ok {
				return h.send(newPlainMessage(chatID, text))
			}
			return err
		}

		page := 0
		text, totalPages := buildStationsPage(c.All(), page)

		msg := newMessage(chatID, text)
		if kb := buildStationsKeyboard(page, totalPages); kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, formatHelp()))
	}
}

// startQuiz creates a fresh session and sends its first question.
func (h *Handler) startQuiz(ctx context.Context, chatID int64) error {
	q, err := h.quizService.Start(ctx, chatID)
	if err != nil {
		if text, ok := catalogUnavailableText(err); ok {
			return h.send(newPlainMessage(chatID, text))
		}
		return err
	}
	return h.sendQuestion(chatID, q)
}

// catalogUnavailableText maps loading and load failure to their screens.
func catalogUnavailableText(err error) (string, bool) {
	switch {
	case errors.Is(err, catalog.ErrLoading):
		return msgLoading, true
	case errors.Is(err, catalog.ErrFetch):
		return msgLoadFailed, true
	default:
		return "", false
	}
}
