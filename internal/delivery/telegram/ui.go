package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

// buildAnswerKeyboard builds one button per option of the question.
func buildAnswerKeyboard(q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildAnswerCallback(q.Position, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildNextKeyboard replaces the options once the question is revealed.
func buildNextKeyboard(q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	label := btnNextQuestion
	if q.Number() == q.Total {
		label = btnFinish
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(q.Position)),
		),
	)
}

// buildQuestionKeyboard picks the keyboard matching the question state.
func buildQuestionKeyboard(q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	if q.Revealed {
		return buildNextKeyboard(q)
	}
	return buildAnswerKeyboard(q)
}

// buildRestartKeyboard offers a fresh pass.
func buildRestartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRestart, buildQuizStartCallback()),
		),
	)
}

// buildStationsKeyboard builds pagination keyboard for the station list.
func buildStationsKeyboard(page, totalPages int) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnPrevPage, buildStationsCallback(page-1)))
	}

	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(btnNextPage, buildStationsCallback(page+1)))
	}

	kb := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}

	return &kb
}

// emptyKeyboard removes every inline button of a message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
