package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	quizService QuizService
	catalog     CatalogProvider
	messages    QuestionMessages
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	catalog CatalogProvider,
	messages QuestionMessages,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		catalog:     catalog,
		messages:    messages,
	}
}

// Run polls Telegram for updates until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUseButtons))
		return
	}

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "quiz":
		fn = h.handleQuiz()
	case "score":
		fn = h.handleScore()
	case "stats":
		fn = h.handleStats()
	case "stations":
		fn = h.handleStations()
	case "help":
		fn = h.handleHelp()
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// Commands lists the bot commands shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "quiz", Description: "クイズを始める"},
		{Command: "score", Description: "現在のスコア"},
		{Command: "stats", Description: "これまでの成績"},
		{Command: "stations", Description: "駅の一覧"},
		{Command: "help", Description: "ヘルプ"},
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.sendMessage(c)
	return err
}

func (h *Handler) sendMessage(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	sent, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return sent, fmt.Errorf("send telegram message: %w", err)
	}
	return sent, nil
}

// sendQuestion sends q as a new message and strips the buttons of the chat's previous question.
func (h *Handler) sendQuestion(chatID int64, q *entities.Question) error {
	msg := newMessage(chatID, formatQuestion(q))
	msg.ReplyMarkup = buildAnswerKeyboard(q)

	sent, err := h.sendMessage(msg)
	if err != nil {
		return err
	}

	prev, hadPrev := h.messages.Swap(chatID, sent.MessageID)
	if hadPrev && prev != sent.MessageID {
		strip := tgbotapi.NewEditMessageReplyMarkup(chatID, prev, emptyKeyboard())
		if _, err := h.bot.Request(strip); err != nil {
			h.logger.Debug("failed to strip previous question buttons",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", prev),
				zap.Error(err),
			)
		}
	}
	return nil
}

// answerCallback removes the loading indicator, optionally with a toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("failed to answer callback",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
