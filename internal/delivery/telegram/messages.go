// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

const (
	msgTitle      = "駅名読みクイズ"
	msgLoading    = "読み込み中..."
	msgLoadFailed = "Failed to fetch stations"
)

// Error and hint messages.
const (
	msgInternalError  = "エラーが発生しました。しばらくしてからもう一度お試しください。"
	msgUnknownCommand = "不明なコマンドです。/help でコマンド一覧を表示します。"
	msgUseButtons     = "ボタンで回答してください。/quiz で新しいクイズを始めます。"
	msgNoActiveQuiz   = "進行中のクイズはありません。/quiz で始めましょう。"
	msgStaleButton    = "この問題はすでに終わっています。"
	msgStatsDisabled  = "成績の記録は無効になっています。"
	msgNoStats        = "まだ最後まで解いたクイズはありません。"
)

// Button labels.
const (
	btnNextQuestion = "次の問題へ ▶️"
	btnFinish       = "結果を見る 🏁"
	btnRestart      = "🔄 最初から"
	btnPrevPage     = "◀️ 前へ"
	btnNextPage     = "次へ ▶️"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func formatWelcome() string {
	var sb strings.Builder

	sb.WriteString(bold(msgTitle))
	sb.WriteString("\n\n")
	sb.WriteString(md("難読駅名の読み方を当てるクイズです。"))
	sb.WriteString("\n")
	sb.WriteString(md("駅名と路線名、所在地を見て、正しい読み方を選んでください。"))
	sb.WriteString("\n")
	sb.WriteString(md("最後の駅まで答えるとスコアが表示され、また最初から始まります。"))
	sb.WriteString("\n\n")
	sb.WriteString(formatHelp())

	return sb.String()
}

func formatHelp() string {
	lines := []string{
		"/quiz — クイズを最初から始める",
		"/score — 現在のスコア",
		"/stats — これまでの成績",
		"/stations — 出題される駅の一覧",
		"/help — このヘルプ",
	}
	return md(strings.Join(lines, "\n"))
}

// formatStationTitle renders "<stationName>（<lineName>）".
func formatStationTitle(s entities.Station) string {
	if s.LineName == "" {
		return s.StationName
	}
	return fmt.Sprintf("%s（%s）", s.StationName, s.LineName)
}

// formatQuestion renders the question screen (MarkdownV2 safe).
func formatQuestion(q *entities.Question) string {
	var sb strings.Builder

	sb.WriteString(bold(msgTitle))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("問題 %d / %d", q.Number(), q.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(formatStationTitle(q.Station)))
	sb.WriteString("\n")
	sb.WriteString(md("所在地: " + q.Station.Location))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("スコア: %d", q.Score)))

	return sb.String()
}

// formatAnswerFeedback renders the reveal shown under the question.
func formatAnswerFeedback(res *entities.AnswerResult) string {
	if res.Correct {
		return fmt.Sprintf("%s %s", md("⭕"), bold("正解！"))
	}
	return fmt.Sprintf(
		"%s %s\n%s %s\n%s %s",
		md("❌"),
		bold("不正解…"),
		md("あなたの回答:"),
		md(res.Selected),
		md("正しい読み方:"),
		bold(res.Reading),
	)
}

// formatRevealedQuestion renders an answered question with its feedback.
func formatRevealedQuestion(q *entities.Question, res *entities.AnswerResult) string {
	return formatQuestion(q) + "\n\n" + formatAnswerFeedback(res)
}

// formatCompletion renders the end of a pass (MarkdownV2 safe).
func formatCompletion(c *entities.Completion) string {
	percentage := c.Percentage()

	emoji, message := "📚", "難読駅はまだまだあります。もう一周してみましょう！"
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "素晴らしい！駅名マスターです。"
	case percentage >= 70:
		emoji, message = "👍", "よくできました！"
	case percentage >= 50:
		emoji, message = "💪", "あと少し、その調子です。"
	}

	return fmt.Sprintf(
		"%s %s\n\n%s\n%s\n\n%s",
		md(emoji),
		bold(fmt.Sprintf("クイズ終了！あなたのスコア: %d / %d", c.Score, c.Total)),
		md(buildProgressBar(c.Score, c.Total, 10)),
		md(fmt.Sprintf("正答率: %.0f%%", percentage)),
		md(message),
	)
}

// formatScore renders the standing of the current pass.
func formatScore(q *entities.Question) string {
	answered := q.Position
	if q.Revealed {
		answered++
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s",
		bold(msgTitle),
		md(fmt.Sprintf("スコア: %d", q.Score)),
		md(fmt.Sprintf("回答済み: %d / %d", answered, q.Total)),
		md(buildProgressBar(answered, q.Total, 10)),
	)
}

// formatStats renders the recorded history of a chat.
func formatStats(s *entities.ChatStats) string {
	if s.Passes == 0 {
		return md(msgNoStats)
	}

	var sb strings.Builder

	sb.WriteString(bold("📊 これまでの成績"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("完走回数: %d", s.Passes)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("最高スコア: %d / %d", s.BestScore, s.BestTotal)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("前回のスコア: %d / %d", s.LastScore, s.LastTotal)))

	if len(s.Recent) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("最近の結果"))
		for _, r := range s.Recent {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s  %d / %d",
				r.CompletedAt.UTC().Format("2006-01-02 15:04"), r.Score, r.Total)))
		}
	}

	return sb.String()
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
