package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/quiz"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionAnswer:
		fn = h.handleAnswerCallback(cb, data)
	case actionNext:
		fn = h.handleNextCallback(cb, data)
	case actionStations:
		fn = h.handleStationsCallback(cb, data)
	case actionQuiz:
		fn = h.handleQuizCallback(cb, data)
	default:
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handleAnswerCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		position, err1 := data.intParam(0)
		optionIndex, err2 := data.intParam(1)
		if err := errors.Join(err1, err2); err != nil {
			h.logger.Warn("invalid answer callback", zap.Error(err))
			h.answerCallback(cb, "")
			return nil
		}

		res, err := h.quizService.Answer(ctx, chatID, position, optionIndex)
		if isStaleButton(err) {
			h.answerCallback(cb, msgStaleButton)
			return nil
		}
		if err != nil {
			h.answerCallback(cb, "")
			return err
		}

		q, err := h.quizService.Current(ctx, chatID)
		if err != nil {
			h.answerCallback(cb, "")
			return err
		}

		toast := "不正解…"
		if res.Correct {
			toast = "正解！"
		}
		h.answerCallback(cb, toast)

		edit := newEdit(chatID, cb.Message.MessageID, formatRevealedQuestion(q, res))
		kb := buildNextKeyboard(q)
		edit.ReplyMarkup = &kb
		return h.send(edit)
	}
}

func (h *Handler) handleNextCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		position, err := data.intParam(0)
		if err != nil {
			h.logger.Warn("invalid next callback", zap.Error(err))
			h.answerCallback(cb, "")
			return nil
		}

		q, completion, err := h.quizService.Advance(ctx, chatID, position)
		if isStaleButton(err) {
			h.answerCallback(cb, msgStaleButton)
			return nil
		}
		h.answerCallback(cb, "")
		if err != nil {
			return err
		}

		if completion == nil {
			edit := newEdit(chatID, cb.Message.MessageID, formatQuestion(q))
			kb := buildAnswerKeyboard(q)
			edit.ReplyMarkup = &kb
			return h.send(edit)
		}

		// The finished question turns into the result; the new pass starts below it.
		if err := h.send(newEdit(chatID, cb.Message.MessageID, formatCompletion(completion))); err != nil {
			return err
		}

		return h.sendQuestion(chatID, q)
	}
}

func (h *Handler) handleStationsCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(cb, "")

		page, err := data.intParam(0)
		if err != nil {
			h.logger.Warn("invalid stations callback", zap.Error(err))
			return nil
		}

		c, err := h.catalog.Catalog()
		if err != nil {
			if text, ok := catalogUnavailableText(err); ok {
				return h.send(newPlainMessage(chatID, text))
			}
			return err
		}

		text, totalPages := buildStationsPage(c.All(), page)
		if text == "" {
			h.logger.Warn("stations page out of range",
				zap.Int("page", page),
				zap.Int("total_pages", totalPages),
			)
			return nil
		}

		edit := newEdit(chatID, cb.Message.MessageID, text)
		if kb := buildStationsKeyboard(page, totalPages); kb != nil {
			edit.ReplyMarkup = kb
		}
		return h.send(edit)
	}
}

func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.answerCallback(cb, "")

		if len(data.Params) == 0 || data.Params[0] != quizStart {
			h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
			return nil
		}
		return h.startQuiz(ctx, chatID)
	}
}

// isStaleButton reports errors caused by pressing a button of a question that is no longer open.
func isStaleButton(err error) bool {
	return errors.Is(err, service.ErrStaleQuestion) ||
		errors.Is(err, service.ErrNoActiveSession) ||
		errors.Is(err, quiz.ErrInvalidTransition) ||
		errors.Is(err, quiz.ErrOptionOutOfRange)
}
